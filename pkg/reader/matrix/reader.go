// Package matrix reads EB excitation-emission matrix exports.
//
// An EB file starts with a metadata block. One metadata line begins with the
// Fixed/Offset marker and lists the excitation wavelength of every intensity
// column. Each line after the block is a data row: the emission wavelength
// followed by one intensity per excitation column.
package matrix

import (
	"fmt"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
	"github.com/ChrisMcGann/EEMKey/pkg/reader/sheet"
)

const (
	// DefaultMetadataLines is the size of the metadata block.
	DefaultMetadataLines = 24
	// OffsetMarker starts the metadata line that lists excitation offsets.
	OffsetMarker = "Fixed/Offset"
)

// Reader parses EB matrix files.
type Reader struct {
	MetadataLines int
	Sheet         string
}

// NewReader creates a reader with the standard metadata block size.
func NewReader() *Reader {
	return &Reader{MetadataLines: DefaultMetadataLines}
}

// ReadFile parses the matrix at path.
//
// Blank intensity cells are kept as invalid readings so the correction
// engine can apply its blank policy. Non-numeric cells and rows with fewer
// intensity columns than offsets fail the read with a MalformedRowError. When no marker line is found the returned matrix has
// MarkerFound false and no offsets.
func (r *Reader) ReadFile(path string) (*core.Matrix, error) {
	rows, err := sheet.Read(path, sheet.Options{Sheet: r.Sheet})
	if err != nil {
		return nil, err
	}

	m := &core.Matrix{}

	for i, row := range rows {
		if i < r.MetadataLines {
			if row.Field(0) != OffsetMarker {
				continue
			}
			offsets, err := parseOffsets(path, row)
			if err != nil {
				return nil, err
			}
			m.Offsets = nonZero(offsets)
			m.MarkerFound = true
			continue
		}

		if row.Blank() {
			continue
		}

		cells := make([]core.Reading, len(row.Fields))
		for j, f := range row.Fields {
			cell, err := sheet.Cell(f)
			if err != nil {
				return nil, &core.MalformedRowError{File: path, Row: row.Line, Reason: err.Error()}
			}
			cells[j] = cell
		}
		if n := len(cells) - 1; n < len(m.Offsets) {
			return nil, &core.MalformedRowError{
				File:   path,
				Row:    row.Line,
				Reason: fmt.Sprintf("row has %d intensity columns for %d excitation offsets", n, len(m.Offsets)),
			}
		}

		m.Rows = append(m.Rows, core.EmissionRow{
			Line:        row.Line,
			Emission:    cells[0],
			Intensities: cells[1:],
		})
	}

	if m.Offsets == nil {
		m.Offsets = []int{}
	}
	return m, nil
}

// parseOffsets reads every field after the marker as an excitation
// wavelength. Blank fields become zero placeholders.
func parseOffsets(path string, row sheet.Row) ([]int, error) {
	offsets := make([]int, 0, len(row.Fields)-1)
	for _, f := range row.Fields[1:] {
		cell, err := sheet.Cell(f)
		if err != nil {
			return nil, &core.MalformedRowError{
				File:   path,
				Row:    row.Line,
				Reason: "offset: " + err.Error(),
			}
		}
		offsets = append(offsets, core.Wavelength(cell.Value))
	}
	return offsets, nil
}

func nonZero(raw []int) []int {
	offsets := make([]int, 0, len(raw))
	for _, o := range raw {
		if o != 0 {
			offsets = append(offsets, o)
		}
	}
	return offsets
}
