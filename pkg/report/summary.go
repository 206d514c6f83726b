// Package report summarizes corrected tables and renders them as images.
package report

import (
	"fmt"
	"io"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
	"github.com/ChrisMcGann/EEMKey/pkg/correction"
	"github.com/montanaflynn/stats"
)

// Stats holds descriptive statistics of one column.
type Stats struct {
	Min, Max, Mean, Median float64
}

// Summary describes a corrected table.
type Summary struct {
	Records     int
	Emissions   int // distinct lem values
	Excitations int // distinct lex values
	Intensity   Stats
	Corrected   Stats
	Factor      Stats // IFC/IF correction factor
}

// Summarize computes the summary of t. An empty table yields zero stats.
func Summarize(t *core.Table) (*Summary, error) {
	s := &Summary{Records: len(t.Records)}
	if len(t.Records) == 0 {
		return s, nil
	}

	intensity := make([]float64, len(t.Records))
	corrected := make([]float64, len(t.Records))
	factor := make([]float64, len(t.Records))
	lem := make(map[int]struct{})
	lex := make(map[int]struct{})

	for i, r := range t.Records {
		intensity[i] = r.Intensity
		corrected[i] = r.Corrected
		factor[i] = correction.Factor(r.AbsEx, r.AbsEm)
		lem[r.Emission] = struct{}{}
		lex[r.Excitation] = struct{}{}
	}
	s.Emissions = len(lem)
	s.Excitations = len(lex)

	var err error
	if s.Intensity, err = describe(intensity); err != nil {
		return nil, fmt.Errorf("intensity: %w", err)
	}
	if s.Corrected, err = describe(corrected); err != nil {
		return nil, fmt.Errorf("corrected intensity: %w", err)
	}
	if s.Factor, err = describe(factor); err != nil {
		return nil, fmt.Errorf("correction factor: %w", err)
	}
	return s, nil
}

func describe(data stats.Float64Data) (Stats, error) {
	var st Stats
	var err error

	if st.Min, err = stats.Min(data); err != nil {
		return st, err
	}
	if st.Max, err = stats.Max(data); err != nil {
		return st, err
	}
	if st.Mean, err = stats.Mean(data); err != nil {
		return st, err
	}
	if st.Median, err = stats.Median(data); err != nil {
		return st, err
	}
	return st, nil
}

// Print writes a human-readable summary.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Records: %d (%d emission x %d excitation wavelengths)\n", s.Records, s.Emissions, s.Excitations)
	if s.Records == 0 {
		return
	}
	printStats(w, "IF", s.Intensity)
	printStats(w, "IFC", s.Corrected)
	printStats(w, "IFC/IF", s.Factor)
}

func printStats(w io.Writer, name string, st Stats) {
	fmt.Fprintf(w, "%-7s min %.4g  max %.4g  mean %.4g  median %.4g\n", name, st.Min, st.Max, st.Mean, st.Median)
}
