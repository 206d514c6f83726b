// Package translate sequences the readers, the correction engine and the
// writers for one EB or FL translation.
package translate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
	"github.com/ChrisMcGann/EEMKey/pkg/correction"
	"github.com/ChrisMcGann/EEMKey/pkg/filter"
	"github.com/ChrisMcGann/EEMKey/pkg/reader/absorbance"
	"github.com/ChrisMcGann/EEMKey/pkg/reader/matrix"
	"github.com/ChrisMcGann/EEMKey/pkg/reader/tabular"
	"github.com/ChrisMcGann/EEMKey/pkg/writer/table"
)

// Request names the inputs and output of one translation.
type Request struct {
	EEMPath        string // EB matrix or FL table
	AbsorbancePath string
	OutputPath     string
	Mode           core.Mode
}

// Options tune the readers, the engine and the writer.
type Options struct {
	AbsorbanceSkip int    // header lines of the absorbance file
	MetadataLines  int    // metadata block of the EB matrix
	TabularSkip    int    // header rows of the FL table
	Sheet          string // worksheet of spreadsheet inputs; empty selects the first
	Blank          core.BlankPolicy
	CRLF           bool
	Filter         filter.Config
	Logger         *slog.Logger
}

// DefaultOptions returns the options matching the instrument export layouts.
func DefaultOptions() Options {
	return Options{
		AbsorbanceSkip: absorbance.DefaultSkip,
		MetadataLines:  matrix.DefaultMetadataLines,
		TabularSkip:    tabular.DefaultSkip,
		Blank:          core.BlankZero,
		CRLF:           true,
	}
}

// Result reports what a translation produced.
type Result struct {
	Table *core.Table
	// Warnings holds recoverable conditions such as core.ErrNoOffsetsFound.
	Warnings []error
	// Filtered is the number of records removed by the filter.
	Filtered int
}

// HasWarning reports whether target is among the warnings.
func (r *Result) HasWarning(target error) bool {
	for _, w := range r.Warnings {
		if errors.Is(w, target) {
			return true
		}
	}
	return false
}

// Translator runs translations. It holds configuration only; every call
// builds its intermediate state from scratch.
type Translator struct {
	opts Options
	log  *slog.Logger
}

// New creates a translator.
func New(opts Options) *Translator {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Translator{opts: opts, log: log}
}

// Translate runs one translation with default options, writing the corrected
// table to outputPath and replacing any existing file. Nothing is written
// when an error is returned.
func Translate(eemPath, absorbancePath, outputPath string, mode core.Mode) error {
	_, err := New(DefaultOptions()).Translate(Request{
		EEMPath:        eemPath,
		AbsorbancePath: absorbancePath,
		OutputPath:     outputPath,
		Mode:           mode,
	})
	return err
}

// Translate computes the table for req and writes it to req.OutputPath.
func (t *Translator) Translate(req Request) (*Result, error) {
	res, err := t.Compute(req)
	if err != nil {
		return nil, err
	}
	if err := t.Write(req, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Write replaces req.OutputPath with the table of a computed result.
func (t *Translator) Write(req Request, res *Result) error {
	w := &table.Writer{CRLF: t.opts.CRLF}
	if err := w.WriteFile(req.OutputPath, res.Table); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	t.log.Info("translation written",
		"mode", req.Mode.String(),
		"output", req.OutputPath,
		"records", len(res.Table.Records),
	)
	return nil
}

// Compute reads the inputs of req and returns the corrected table without
// writing anything.
func (t *Translator) Compute(req Request) (*Result, error) {
	if err := t.opts.Filter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	var (
		res *Result
		err error
	)

	switch req.Mode {
	case core.ModeEB:
		res, err = t.computeEB(req)
	case core.ModeFL:
		res, err = t.computeFL(req)
	default:
		return nil, &core.UnsupportedModeError{Mode: req.Mode.String()}
	}
	if err != nil {
		return nil, err
	}

	if n := t.opts.Filter.Apply(res.Table); n > 0 {
		res.Filtered = n
		t.log.Debug("records filtered", "removed", n, "kept", len(res.Table.Records))
	}

	return res, nil
}

func (t *Translator) computeEB(req Request) (*Result, error) {
	mr := &matrix.Reader{MetadataLines: t.opts.MetadataLines, Sheet: t.opts.Sheet}
	m, err := mr.ReadFile(req.EEMPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read matrix: %w", err)
	}
	t.log.Debug("matrix read", "file", req.EEMPath, "offsets", len(m.Offsets), "rows", len(m.Rows))

	abs, err := t.readAbsorbance(req.AbsorbancePath)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	if len(m.Offsets) == 0 {
		res.Warnings = append(res.Warnings, fmt.Errorf("%s: %w", req.EEMPath, core.ErrNoOffsetsFound))
		t.log.Warn("no excitation offsets found, output will hold the header only",
			"file", req.EEMPath,
			"marker", matrix.OffsetMarker,
			"marker_found", m.MarkerFound,
		)
	}

	res.Table, err = correction.New(t.opts.Blank, req.EEMPath).Matrix(abs, m)
	if err != nil {
		return nil, fmt.Errorf("correction failed: %w", err)
	}
	return res, nil
}

func (t *Translator) computeFL(req Request) (*Result, error) {
	tr := &tabular.Reader{Skip: t.opts.TabularSkip, Sheet: t.opts.Sheet}
	obs, err := tr.ReadFile(req.EEMPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fluorescence table: %w", err)
	}
	t.log.Debug("fluorescence table read", "file", req.EEMPath, "observations", len(obs))

	abs, err := t.readAbsorbance(req.AbsorbancePath)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	res.Table, err = correction.New(t.opts.Blank, req.EEMPath).Observations(abs, obs)
	if err != nil {
		return nil, fmt.Errorf("correction failed: %w", err)
	}
	return res, nil
}

func (t *Translator) readAbsorbance(path string) (core.AbsorbanceTable, error) {
	ar := &absorbance.Reader{Skip: t.opts.AbsorbanceSkip, Sheet: t.opts.Sheet}
	abs, err := ar.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read absorbance: %w", err)
	}
	t.log.Debug("absorbance read", "file", path, "wavelengths", len(abs))
	return abs, nil
}
