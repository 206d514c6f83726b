// Package absorbance reads UV-VIS absorbance spectra into a wavelength-keyed
// table.
package absorbance

import (
	"fmt"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
	"github.com/ChrisMcGann/EEMKey/pkg/reader/sheet"
)

// DefaultSkip is the number of header lines in an absorbance export paired
// with an EB matrix.
const DefaultSkip = 47

// Reader parses absorbance files.
type Reader struct {
	// Skip is the number of leading lines dropped unconditionally.
	Skip  int
	Sheet string
}

// NewReader creates a reader that skips the given number of header lines.
func NewReader(skip int) *Reader {
	return &Reader{Skip: skip}
}

// ReadFile builds an AbsorbanceTable from the file at path. Each data row
// needs a numeric wavelength and absorbance in its first two fields; the
// first malformed row fails the read. Only empty lines are skipped; a line
// of bare delimiters is malformed. A wavelength that repeats keeps its
// last value.
func (r *Reader) ReadFile(path string) (core.AbsorbanceTable, error) {
	rows, err := sheet.Read(path, sheet.Options{Sheet: r.Sheet})
	if err != nil {
		return nil, err
	}

	table := make(core.AbsorbanceTable)
	for i, row := range rows {
		if i < r.Skip || row.Empty() {
			continue
		}

		nm, err := required(row, 0, "wavelength")
		if err != nil {
			return nil, &core.MalformedRowError{File: path, Row: row.Line, Reason: err.Error()}
		}
		a, err := required(row, 1, "absorbance")
		if err != nil {
			return nil, &core.MalformedRowError{File: path, Row: row.Line, Reason: err.Error()}
		}

		table[core.Wavelength(nm)] = a
	}

	return table, nil
}

func required(row sheet.Row, i int, what string) (float64, error) {
	if i >= len(row.Fields) {
		return 0, fmt.Errorf("missing %s field", what)
	}
	r, err := sheet.Cell(row.Fields[i])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}
	if !r.Valid {
		return 0, fmt.Errorf("blank %s", what)
	}
	return r.Value, nil
}
