// Package sheet loads instrument exports as positional rows of text fields.
//
// Comma-delimited text files are read line by line so that fixed header
// offsets count physical lines, blank ones included. Files with an .xlsx or
// .xlsm extension are read from a worksheet with excelize, one row per sheet
// row.
package sheet

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
	"github.com/xuri/excelize/v2"
)

// maxLineSize bounds a single text line; wide EEM matrices exceed the
// bufio.Scanner default of 64KiB.
const maxLineSize = 16 * 1024 * 1024

// Row is one line (text) or sheet row (xlsx) of a source file.
type Row struct {
	Line   int // 1-based position in the source
	Fields []string
}

// Blank reports whether every field of the row is empty.
func (r Row) Blank() bool {
	for _, f := range r.Fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Empty reports whether the row has no content at all. Unlike Blank, a
// row made only of delimiters such as "," is not empty.
func (r Row) Empty() bool {
	switch len(r.Fields) {
	case 0:
		return true
	case 1:
		return strings.TrimSpace(r.Fields[0]) == ""
	}
	return false
}

// Field returns the trimmed field at index i, or "" when the row is shorter.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return strings.TrimSpace(r.Fields[i])
}

// Options controls how a source is opened.
type Options struct {
	// Sheet names the worksheet of a spreadsheet source. Empty selects the
	// first sheet.
	Sheet string
}

// IsSpreadsheet reports whether path is read through excelize.
func IsSpreadsheet(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// Read loads every row of the file at path. The file is closed before Read
// returns.
func Read(path string, opts Options) ([]Row, error) {
	if IsSpreadsheet(path) {
		return readSpreadsheet(path, opts.Sheet)
	}
	return readText(path)
}

func readText(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var rows []Row
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)
		rows = append(rows, Row{Line: lineNum, Fields: strings.Split(line, ",")})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s at line %d: %w", path, lineNum+1, err)
	}

	return rows, nil
}

func readSpreadsheet(path, sheetName string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("spreadsheet %s has no sheets", path)
		}
		sheetName = sheets[0]
	}

	cells, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	rows := make([]Row, len(cells))
	for i, c := range cells {
		rows[i] = Row{Line: i + 1, Fields: c}
	}
	return rows, nil
}

// Cell parses a numeric field. A blank field yields an invalid reading and
// no error; a non-numeric field yields an invalid reading and an error.
func Cell(s string) (core.Reading, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Blank(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return core.Blank(), fmt.Errorf("invalid number '%s'", s)
	}
	return core.Num(v), nil
}
