package viz

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/thermograd/gibbs/calc"
)

// PhaseSeries extracts one scatter series per phase from a grid row:
// X[component] against the property value at condition row condIndex.
// Injected reference points are skipped, and the returned phase names
// are sorted so series order (and any legend built from it) is stable
// across runs.
//
// Errors: ErrNilGrid, ErrUnknownComponent, ErrCondRange.
//
// Complexity: O(Points + phases·log phases).
func PhaseSeries(g *calc.Grid, component string, condIndex int) ([]string, []plotter.XYs, error) {
	// 1) Validate the request before touching the blocks.
	if g == nil {
		return nil, nil, ErrNilGrid
	}
	col := -1
	for i, name := range g.Components {
		if name == component {
			col = i

			break
		}
	}
	if col < 0 {
		return nil, nil, ErrUnknownComponent
	}
	if condIndex < 0 || condIndex >= g.NumConds {
		return nil, nil, ErrCondRange
	}

	// 2) Group physical points by phase.
	byPhase := make(map[string]plotter.XYs)
	for p := 0; p < g.Points; p++ {
		if g.Fake[p] {
			continue
		}
		ph := g.Phases[p]
		byPhase[ph] = append(byPhase[ph], plotter.XY{
			X: g.XAt(p)[col],
			Y: g.ValueAt(condIndex, p),
		})
	}

	// 3) Stable ordering by phase name.
	names := make([]string, 0, len(byPhase))
	for name := range byPhase {
		names = append(names, name)
	}
	sort.Strings(names)

	series := make([]plotter.XYs, len(names))
	for i, name := range names {
		series[i] = byPhase[name]
	}

	return names, series, nil
}

// GridScatter renders one condition row of a grid as a per-phase scatter
// of mole fraction against property value. Each phase gets its own color
// and glyph in phase-name order, so the legend reads the same for every
// grid built over the same phases.
//
// Errors: everything PhaseSeries reports, plus plotter errors for
// non-finite values (the large-energy sentinel is finite and renders;
// it just dominates the Y range).
func GridScatter(g *calc.Grid, component string, condIndex int) (*plot.Plot, error) {
	names, series, err := PhaseSeries(g, component, condIndex)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s point grid", g.Output)
	p.X.Label.Text = fmt.Sprintf("X(%s)", component)
	p.Y.Label.Text = g.Output
	p.Add(plotter.NewGrid())

	for i, name := range names {
		s, err := plotter.NewScatter(series[i])
		if err != nil {
			return nil, fmt.Errorf("viz: phase %s: %w", name, err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = plotutil.Shape(i)
		p.Add(s)
		p.Legend.Add(name, s)
	}

	return p, nil
}
