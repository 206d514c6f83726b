package report

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/ChrisMcGann/EEMKey/pkg/core"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrHeatmapTooSmall is returned when a table spans fewer than two
// excitation or two emission wavelengths.
var ErrHeatmapTooSmall = errors.New("heatmap needs at least two excitation and two emission wavelengths")

// eemGrid lays corrected intensities out with excitation wavelengths as
// columns and emission wavelengths as rows. Missing cells are NaN.
type eemGrid struct {
	lex, lem []int
	z        [][]float64 // [row][col]
}

func newEEMGrid(t *core.Table) *eemGrid {
	lexIdx := make(map[int]int)
	lemIdx := make(map[int]int)
	for _, r := range t.Records {
		lexIdx[r.Excitation] = 0
		lemIdx[r.Emission] = 0
	}

	g := &eemGrid{lex: sortedKeys(lexIdx), lem: sortedKeys(lemIdx)}
	for i, v := range g.lex {
		lexIdx[v] = i
	}
	for i, v := range g.lem {
		lemIdx[v] = i
	}

	g.z = make([][]float64, len(g.lem))
	for r := range g.z {
		g.z[r] = make([]float64, len(g.lex))
		for c := range g.z[r] {
			g.z[r][c] = math.NaN()
		}
	}
	for _, rec := range t.Records {
		g.z[lemIdx[rec.Emission]][lexIdx[rec.Excitation]] = rec.Corrected
	}
	return g
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func (g *eemGrid) Dims() (c, r int)   { return len(g.lex), len(g.lem) }
func (g *eemGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g *eemGrid) X(c int) float64    { return float64(g.lex[c]) }
func (g *eemGrid) Y(r int) float64    { return float64(g.lem[r]) }

// CanHeatmap reports whether t spans enough wavelengths to be drawn.
func CanHeatmap(t *core.Table) error {
	return newEEMGrid(t).check()
}

func (g *eemGrid) check() error {
	if len(g.lex) < 2 || len(g.lem) < 2 {
		return fmt.Errorf("%w, got %d and %d", ErrHeatmapTooSmall, len(g.lex), len(g.lem))
	}
	return nil
}

// Heatmap renders the corrected intensities of t as an excitation-emission
// map and saves it to path. The image format follows the file extension
// (png, svg, pdf, ...).
func Heatmap(t *core.Table, title, path string) error {
	g := newEEMGrid(t)
	if err := g.check(); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "lex (nm)"
	p.Y.Label.Text = "lem (nm)"

	hm := plotter.NewHeatMap(g, palette.Heat(16, 1))
	hm.NaN = color.Transparent

	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, rec := range t.Records {
		minZ = math.Min(minZ, rec.Corrected)
		maxZ = math.Max(maxZ, rec.Corrected)
	}
	if minZ == maxZ {
		maxZ = minZ + 1
	}
	hm.Min, hm.Max = minZ, maxZ
	p.Add(hm)

	if err := p.Save(vg.Points(800), vg.Points(600), path); err != nil {
		return fmt.Errorf("failed to save heatmap: %w", err)
	}
	return nil
}
