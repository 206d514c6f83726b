package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInputs(t *testing.T) (dir, eem, abs string) {
	return writeMatrixInputs(t, "Fixed/Offset,250,260,,", "300,10,11,,", "310,12,13,,")
}

func writeMatrixInputs(t *testing.T, offsets string, data ...string) (dir, eem, abs string) {
	t.Helper()
	dir = t.TempDir()

	var m strings.Builder
	for i := 1; i <= 24; i++ {
		if i == 3 {
			m.WriteString(offsets + "\n")
			continue
		}
		fmt.Fprintf(&m, "Meta%d\n", i)
	}
	for _, d := range data {
		m.WriteString(d + "\n")
	}
	eem = filepath.Join(dir, "eem.csv")
	require.NoError(t, os.WriteFile(eem, []byte(m.String()), 0o644))

	var a strings.Builder
	for i := 1; i <= 47; i++ {
		fmt.Fprintf(&a, "header %d\n", i)
	}
	a.WriteString("250,0.1\n260,0.12\n300,0.2\n310,0.22\n")
	abs = filepath.Join(dir, "uvvis.csv")
	require.NoError(t, os.WriteFile(abs, []byte(a.String()), 0o644))
	return dir, eem, abs
}

func TestTranslateCommand(t *testing.T) {
	dir, eem, abs := writeInputs(t)
	out := filepath.Join(dir, "output.csv")
	db := filepath.Join(dir, "runs.db")

	rootCmd.SetArgs([]string{
		"translate", "--log-level", "error",
		"--mode", "EB", "--eem", eem, "--absorbance", abs, "--out", out,
		"--line-ending", "lf", "--db", db,
	})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 1+2*2)
	assert.Equal(t, "lem (nm);lex (nm);IF;Aex (–);Aem (–);IFC", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "300;250;10,0;0,1;0,2;"), lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "300;260;11,0;0,12;0,2;"), lines[3])
	assert.FileExists(t, db)
}

func TestTranslateCommandHeatmapTooSmall(t *testing.T) {
	dir, eem, abs := writeMatrixInputs(t, "Fixed/Offset,250", "300,10", "310,12")
	out := filepath.Join(dir, "output.csv")
	png := filepath.Join(dir, "eem.png")
	dbFile, heatmapFile = "", ""

	rootCmd.SetArgs([]string{
		"translate", "--log-level", "error",
		"--mode", "EB", "--eem", eem, "--absorbance", abs, "--out", out,
		"--heatmap", png,
	})
	require.NoError(t, rootCmd.Execute())

	assert.FileExists(t, out)
	assert.NoFileExists(t, png)
}

func TestValidateCommandUnsupportedMode(t *testing.T) {
	_, eem, abs := writeInputs(t)

	rootCmd.SetArgs([]string{
		"validate", "--log-level", "error",
		"--mode", "XX", "--eem", eem, "--absorbance", abs,
	})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported mode")
}

func TestLogFlagsValidated(t *testing.T) {
	_, eem, abs := writeInputs(t)
	t.Cleanup(func() { logLevel, logFormat = "", "" })

	rootCmd.SetArgs([]string{
		"validate", "--log-level", "bogus",
		"--mode", "EB", "--eem", eem, "--absorbance", abs,
	})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `log level "bogus"`)
}

func TestWindow(t *testing.T) {
	assert.Equal(t, "any", window(0, 0))
	assert.Equal(t, ">= 300 nm", window(300, 0))
	assert.Equal(t, "<= 500 nm", window(0, 500))
	assert.Equal(t, "300..500 nm", window(300, 500))
}
