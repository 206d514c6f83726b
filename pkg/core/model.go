// Package core provides the in-memory model shared by the EEMKey readers,
// the inner-filter correction engine and the writers.
package core

import (
	"fmt"
	"math"
)

// Reading is one numeric cell from an instrument export. Valid is false when
// the cell was blank or could not be parsed; Value is then zero.
type Reading struct {
	Value float64
	Valid bool
}

// Blank returns an invalid reading.
func Blank() Reading {
	return Reading{}
}

// Num returns a valid reading holding v.
func Num(v float64) Reading {
	return Reading{Value: v, Valid: true}
}

// Wavelength truncates a wavelength read as a real number ("250.0") to the
// integer nanometre key used by AbsorbanceTable. The same rule is applied
// when building the table and when looking values up.
func Wavelength(v float64) int {
	return int(math.Trunc(v))
}

// EmissionRow is one data line of an EB matrix: the emission wavelength
// followed by one raw intensity per excitation column, in file column order.
type EmissionRow struct {
	Line        int // 1-based line number in the source file
	Emission    Reading
	Intensities []Reading
}

// Matrix is the parsed content of an EB matrix file.
type Matrix struct {
	// Offsets are the excitation wavelengths of the intensity columns,
	// zero placeholders removed, in column order.
	Offsets []int
	Rows    []EmissionRow
	// MarkerFound reports whether a Fixed/Offset line was present in the
	// metadata block.
	MarkerFound bool
}

// Observation is one (emission, excitation, intensity) row of an FL table.
type Observation struct {
	Line       int
	Emission   Reading
	Excitation Reading
	Intensity  Reading
}

// AbsorbanceTable maps an integer wavelength (nm) to absorbance.
type AbsorbanceTable map[int]float64

// Lookup returns the absorbance at wavelength nm.
func (t AbsorbanceTable) Lookup(nm int) (float64, error) {
	a, ok := t[nm]
	if !ok {
		return 0, &MissingAbsorbanceError{Wavelength: nm}
	}
	return a, nil
}

// Record is one corrected row of the output table.
type Record struct {
	Emission   int     // lem (nm)
	Excitation int     // lex (nm)
	Intensity  float64 // IF
	AbsEx      float64 // Aex
	AbsEm      float64 // Aem
	Corrected  float64 // IFC
}

// Header is the literal first line of every output table.
var Header = []string{"lem (nm)", "lex (nm)", "IF", "Aex (–)", "Aem (–)", "IFC"}

// Table is the output of a translation: the fixed header followed by the
// corrected records in the order they were computed.
type Table struct {
	Header  []string
	Records []Record
}

// NewTable returns an empty table carrying the literal header.
func NewTable() *Table {
	h := make([]string, len(Header))
	copy(h, Header)
	return &Table{Header: h}
}

// Len returns the number of lines the table renders to, header included.
func (t *Table) Len() int {
	return len(t.Records) + 1
}

// Validate checks that every record carries finite values.
func (t *Table) Validate() error {
	for i, r := range t.Records {
		for _, v := range []float64{r.Intensity, r.AbsEx, r.AbsEm, r.Corrected} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("record %d (lem %d, lex %d): non-finite value", i+1, r.Emission, r.Excitation)
			}
		}
	}
	return nil
}
