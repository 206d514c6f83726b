// Package tabular reads FL fluorescence lists: one header row followed by
// (emission, excitation, intensity) rows.
package tabular

import (
	"github.com/ChrisMcGann/EEMKey/pkg/core"
	"github.com/ChrisMcGann/EEMKey/pkg/reader/sheet"
)

// DefaultSkip is the number of header rows in an FL table.
const DefaultSkip = 1

// Reader parses FL tables from text or spreadsheet sources.
type Reader struct {
	Skip  int
	Sheet string
}

// NewReader creates a reader that skips the single header row.
func NewReader() *Reader {
	return &Reader{Skip: DefaultSkip}
}

// ReadFile returns the observations of the table at path in source order.
// Absent or non-numeric cells become invalid readings; the blank policy of
// the correction engine decides whether they count as zero.
func (r *Reader) ReadFile(path string) ([]core.Observation, error) {
	rows, err := sheet.Read(path, sheet.Options{Sheet: r.Sheet})
	if err != nil {
		return nil, err
	}

	var obs []core.Observation
	for i, row := range rows {
		if i < r.Skip || row.Blank() {
			continue
		}
		obs = append(obs, core.Observation{
			Line:       row.Line,
			Emission:   lenient(row.Field(0)),
			Excitation: lenient(row.Field(1)),
			Intensity:  lenient(row.Field(2)),
		})
	}

	return obs, nil
}

func lenient(s string) core.Reading {
	r, _ := sheet.Cell(s)
	return r
}
