// Package correction applies the inner-filter-effect correction to parsed
// fluorescence intensities.
//
// The corrected intensity is
//
//	IFC = IF * 10^(0.5 * (Aex + Aem))
//
// where Aex and Aem are the sample absorbances at the excitation and
// emission wavelengths.
package correction

import (
	"fmt"
	"math"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
)

// Factor returns the multiplicative inner-filter correction for the given
// excitation and emission absorbances.
func Factor(absEx, absEm float64) float64 {
	return math.Pow(10, 0.5*(absEx+absEm))
}

// Correct returns the inner-filter-corrected intensity.
func Correct(intensity, absEx, absEm float64) float64 {
	return intensity * Factor(absEx, absEm)
}

// Engine turns parsed input into corrected records.
type Engine struct {
	// Blank decides how blank wavelength and intensity cells are read.
	Blank core.BlankPolicy
	// Source names the fluorescence input in error messages.
	Source string
}

// New creates an engine with the given blank policy.
func New(policy core.BlankPolicy, source string) *Engine {
	return &Engine{Blank: policy, Source: source}
}

// Matrix corrects an EB matrix. Records are produced offset by offset, and
// within one offset in row order; the Nth offset reads the Nth intensity
// column of every row. Absorbance is only looked up for records that are
// produced, so offsets without rows need no entry.
//
// matrix.Reader rejects short rows up front; the column check here covers
// matrices built by other means and fires at the first short row reached.
func (e *Engine) Matrix(abs core.AbsorbanceTable, m *core.Matrix) (*core.Table, error) {
	table := core.NewTable()
	table.Records = make([]core.Record, 0, len(m.Offsets)*len(m.Rows))

	for col, lex := range m.Offsets {
		for _, row := range m.Rows {
			if col >= len(row.Intensities) {
				return nil, &core.MalformedRowError{
					File:   e.Source,
					Row:    row.Line,
					Reason: fmt.Sprintf("no intensity column for excitation %d nm (row has %d)", lex, len(row.Intensities)),
				}
			}

			em, err := e.Blank.Resolve(row.Emission, e.Source, row.Line, "emission wavelength")
			if err != nil {
				return nil, err
			}
			intensity, err := e.Blank.Resolve(row.Intensities[col], e.Source, row.Line, "intensity")
			if err != nil {
				return nil, err
			}

			absEx, err := abs.Lookup(lex)
			if err != nil {
				return nil, err
			}
			rec, err := record(abs, core.Wavelength(em), lex, intensity, absEx)
			if err != nil {
				return nil, err
			}
			table.Records = append(table.Records, rec)
		}
	}

	return table, nil
}

// Observations corrects an FL list, one record per observation in order.
func (e *Engine) Observations(abs core.AbsorbanceTable, obs []core.Observation) (*core.Table, error) {
	table := core.NewTable()
	table.Records = make([]core.Record, 0, len(obs))

	for _, o := range obs {
		em, err := e.Blank.Resolve(o.Emission, e.Source, o.Line, "emission wavelength")
		if err != nil {
			return nil, err
		}
		ex, err := e.Blank.Resolve(o.Excitation, e.Source, o.Line, "excitation wavelength")
		if err != nil {
			return nil, err
		}
		intensity, err := e.Blank.Resolve(o.Intensity, e.Source, o.Line, "intensity")
		if err != nil {
			return nil, err
		}

		lex := core.Wavelength(ex)
		absEx, err := abs.Lookup(lex)
		if err != nil {
			return nil, err
		}

		rec, err := record(abs, core.Wavelength(em), lex, intensity, absEx)
		if err != nil {
			return nil, err
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

func record(abs core.AbsorbanceTable, lem, lex int, intensity, absEx float64) (core.Record, error) {
	absEm, err := abs.Lookup(lem)
	if err != nil {
		return core.Record{}, err
	}
	return core.Record{
		Emission:   lem,
		Excitation: lex,
		Intensity:  intensity,
		AbsEx:      absEx,
		AbsEm:      absEm,
		Corrected:  Correct(intensity, absEx, absEm),
	}, nil
}
