package translate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
	"github.com/ChrisMcGann/EEMKey/pkg/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const header = "lem (nm);lex (nm);IF;Aex (–);Aem (–);IFC"

type fixture struct {
	dir string
}

func newFixture(t *testing.T) *fixture {
	return &fixture{dir: t.TempDir()}
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	p := f.path(name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// matrixFile builds an EB export with offsetLine on metadata line 10.
func (f *fixture) matrixFile(t *testing.T, offsetLine string, data ...string) string {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= 24; i++ {
		if i == 10 && offsetLine != "" {
			b.WriteString(offsetLine + "\n")
			continue
		}
		fmt.Fprintf(&b, "Meta%d,x\n", i)
	}
	for _, d := range data {
		b.WriteString(d + "\n")
	}
	return f.write(t, "eem.csv", b.String())
}

func (f *fixture) absorbanceFile(t *testing.T, data ...string) string {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= 47; i++ {
		fmt.Fprintf(&b, "UVVIS header %d\n", i)
	}
	for _, d := range data {
		b.WriteString(d + "\n")
	}
	return f.write(t, "uvvis.csv", b.String())
}

func quiet() Options {
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return opts
}

func readOutput(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\r\n"), "\r\n")
}

func TestTranslateEBScenario(t *testing.T) {
	f := newFixture(t)
	req := Request{
		EEMPath:        f.matrixFile(t, "Fixed/Offset,250.0,,", "300.0,10.0,,"),
		AbsorbancePath: f.absorbanceFile(t, "250.0,0.1", "300.0,0.2"),
		OutputPath:     f.path("output.csv"),
		Mode:           core.ModeEB,
	}

	res, err := New(quiet()).Translate(req)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Table.Records, 1)
	assert.InDelta(t, 14.125, res.Table.Records[0].Corrected, 1e-3)

	lines := readOutput(t, req.OutputPath)
	require.Len(t, lines, 2)
	assert.Equal(t, header, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "300;250;10,0;0,1;0,2;14,125"), lines[1])
}

func TestTranslateEBCount(t *testing.T) {
	f := newFixture(t)
	req := Request{
		EEMPath: f.matrixFile(t, "Fixed/Offset,250,260,270,0,0",
			"300,1,2,3,,",
			"310,4,5,6,,",
		),
		AbsorbancePath: f.absorbanceFile(t, "250,0.1", "260,0.1", "270,0.1", "300,0.2", "310,0.2"),
		OutputPath:     f.path("output.csv"),
		Mode:           core.ModeEB,
	}

	res, err := New(quiet()).Translate(req)
	require.NoError(t, err)
	assert.Len(t, readOutput(t, req.OutputPath), 1+3*2)
	assert.Equal(t, 3*2, len(res.Table.Records))
}

func TestTranslateMissingAbsorbanceLeavesOutput(t *testing.T) {
	f := newFixture(t)
	out := f.write(t, "output.csv", "previous run\n")
	req := Request{
		EEMPath:        f.matrixFile(t, "Fixed/Offset,250", "300,10"),
		AbsorbancePath: f.absorbanceFile(t, "250,0.1"),
		OutputPath:     out,
		Mode:           core.ModeEB,
	}

	_, err := New(quiet()).Translate(req)
	var missing *core.MissingAbsorbanceError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, 300, missing.Wavelength)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous run\n", string(data))
}

func TestTranslateMissingAbsorbanceNoOutput(t *testing.T) {
	f := newFixture(t)
	req := Request{
		EEMPath:        f.matrixFile(t, "Fixed/Offset,250", "300,10"),
		AbsorbancePath: f.absorbanceFile(t, "250,0.1"),
		OutputPath:     f.path("output.csv"),
		Mode:           core.ModeEB,
	}

	_, err := New(quiet()).Translate(req)
	require.Error(t, err)
	_, statErr := os.Stat(req.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTranslateNoOffsets(t *testing.T) {
	f := newFixture(t)
	req := Request{
		EEMPath:        f.matrixFile(t, "", "300,10"),
		AbsorbancePath: f.absorbanceFile(t, "250,0.1", "300,0.2"),
		OutputPath:     f.path("output.csv"),
		Mode:           core.ModeEB,
	}

	res, err := New(quiet()).Translate(req)
	require.NoError(t, err)
	assert.True(t, res.HasWarning(core.ErrNoOffsetsFound))

	lines := readOutput(t, req.OutputPath)
	assert.Equal(t, []string{header}, lines)
}

func TestTranslateFLScenario(t *testing.T) {
	f := newFixture(t)
	abs := f.absorbanceFile(t, "250.0,0.1", "300.0,0.2")

	eb, err := New(quiet()).Compute(Request{
		EEMPath:        f.matrixFile(t, "Fixed/Offset,250", "300,10"),
		AbsorbancePath: abs,
		Mode:           core.ModeEB,
	})
	require.NoError(t, err)

	req := Request{
		EEMPath:        f.write(t, "fl.csv", "lem,lex,IF\n300,250,10.0\n"),
		AbsorbancePath: abs,
		OutputPath:     f.path("fl_output.csv"),
		Mode:           core.ModeFL,
	}
	fl, err := New(quiet()).Translate(req)
	require.NoError(t, err)

	assert.Equal(t, eb.Table.Records, fl.Table.Records)
	assert.Len(t, readOutput(t, req.OutputPath), 2)
}

func TestTranslateFLSpreadsheet(t *testing.T) {
	f := newFixture(t)
	flPath := f.path("fl.xlsx")
	x := excelize.NewFile()
	require.NoError(t, x.SetSheetRow("Sheet1", "A1", &[]any{"lem", "lex", "IF"}))
	require.NoError(t, x.SetSheetRow("Sheet1", "A2", &[]any{300, 250, 10}))
	require.NoError(t, x.SetSheetRow("Sheet1", "A3", &[]any{310, 250, 20}))
	require.NoError(t, x.SaveAs(flPath))
	require.NoError(t, x.Close())

	res, err := New(quiet()).Compute(Request{
		EEMPath:        flPath,
		AbsorbancePath: f.absorbanceFile(t, "250,0.1", "300,0.2", "310,0.3"),
		Mode:           core.ModeFL,
	})
	require.NoError(t, err)
	assert.Len(t, res.Table.Records, 2)
	assert.Equal(t, 310, res.Table.Records[1].Emission)
}

func TestTranslateUnsupportedMode(t *testing.T) {
	f := newFixture(t)
	req := Request{
		EEMPath:        f.matrixFile(t, "Fixed/Offset,250", "300,10"),
		AbsorbancePath: f.absorbanceFile(t, "250,0.1", "300,0.2"),
		OutputPath:     f.path("output.csv"),
		Mode:           core.ModeUnknown,
	}

	_, err := New(quiet()).Translate(req)
	var unsupported *core.UnsupportedModeError
	require.True(t, errors.As(err, &unsupported), "got %v", err)

	_, statErr := os.Stat(req.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "unsupported mode must not write output")
}

func TestTranslateMalformedAbsorbance(t *testing.T) {
	f := newFixture(t)
	_, err := New(quiet()).Compute(Request{
		EEMPath:        f.matrixFile(t, "Fixed/Offset,250", "300,10"),
		AbsorbancePath: f.absorbanceFile(t, "250,0.1", "bad,row"),
		Mode:           core.ModeEB,
	})

	var malformed *core.MalformedRowError
	require.True(t, errors.As(err, &malformed), "got %v", err)
	assert.Equal(t, 49, malformed.Row)
}

func TestTranslateDelimiterOnlyAbsorbanceRow(t *testing.T) {
	f := newFixture(t)
	_, err := New(quiet()).Compute(Request{
		EEMPath:        f.matrixFile(t, "Fixed/Offset,250", "300,10"),
		AbsorbancePath: f.absorbanceFile(t, "250,0.1", ",", "300,0.2"),
		Mode:           core.ModeEB,
	})

	var malformed *core.MalformedRowError
	require.True(t, errors.As(err, &malformed), "got %v", err)
	assert.Equal(t, 49, malformed.Row)
}

func TestTranslateOffsetsWithoutRows(t *testing.T) {
	f := newFixture(t)
	out := f.path("output.csv")
	res, err := New(quiet()).Translate(Request{
		EEMPath:        f.matrixFile(t, "Fixed/Offset,250"),
		AbsorbancePath: f.absorbanceFile(t, "300,0.2"),
		OutputPath:     out,
		Mode:           core.ModeEB,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Table.Records)
	assert.Equal(t, []string{header}, readOutput(t, out))
}

func TestTranslateFilter(t *testing.T) {
	f := newFixture(t)
	opts := quiet()
	opts.Filter = filter.Config{EmissionMin: 305}

	res, err := New(opts).Compute(Request{
		EEMPath:        f.matrixFile(t, "Fixed/Offset,250", "300,10", "310,12"),
		AbsorbancePath: f.absorbanceFile(t, "250,0.1", "300,0.2", "310,0.2"),
		Mode:           core.ModeEB,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Filtered)
	require.Len(t, res.Table.Records, 1)
	assert.Equal(t, 310, res.Table.Records[0].Emission)

	opts.Filter = filter.Config{EmissionMin: 400, EmissionMax: 300}
	_, err = New(opts).Compute(Request{Mode: core.ModeEB})
	assert.Error(t, err)
}

func TestTranslateDefaults(t *testing.T) {
	f := newFixture(t)
	out := f.path("output.csv")

	err := Translate(
		f.matrixFile(t, "Fixed/Offset,250", "300,10"),
		f.absorbanceFile(t, "250,0.1", "300,0.2"),
		out,
		core.ModeEB,
	)
	require.NoError(t, err)
	assert.FileExists(t, out)

	err = Translate("a", "b", out, core.Mode(9))
	var unsupported *core.UnsupportedModeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "Mode(9)", unsupported.Mode)
}
