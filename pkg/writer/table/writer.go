// Package table writes corrected records as semicolon-delimited text with
// decimal-comma real numbers.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
)

// Delimiter separates fields on every line.
const Delimiter = ';'

// Writer renders tables.
type Writer struct {
	// CRLF terminates lines with \r\n instead of \n.
	CRLF bool
}

// NewWriter creates a writer with CRLF line endings.
func NewWriter() *Writer {
	return &Writer{CRLF: true}
}

// Encode writes the header line followed by one line per record.
func (w *Writer) Encode(out io.Writer, t *core.Table) error {
	cw := csv.NewWriter(out)
	cw.Comma = Delimiter
	cw.UseCRLF = w.CRLF

	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	line := make([]string, 6)
	for i, r := range t.Records {
		line[0] = strconv.Itoa(r.Emission)
		line[1] = strconv.Itoa(r.Excitation)
		line[2] = FormatReal(r.Intensity)
		line[3] = FormatReal(r.AbsEx)
		line[4] = FormatReal(r.AbsEm)
		line[5] = FormatReal(r.Corrected)
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile renders t to path, replacing any existing file. The table is
// written to a temporary file in the same directory and renamed into place,
// so a failed write leaves the previous file untouched.
func (w *Writer) WriteFile(path string, t *core.Table) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = w.Encode(tmp, t); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// FormatReal renders v as its shortest round-trip decimal with at least one
// fractional digit, using a comma as the fractional separator. Magnitudes
// below 1e-4 or from 1e16 up use exponent notation ("1e-05").
func FormatReal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	var s string
	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e16) {
		s = strconv.FormatFloat(v, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
	}
	return strings.Replace(s, ".", ",", 1)
}
