package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// TraceLine renders a refinement objective trace (one value per
// iteration, the way solvers record it with KeepTrace) as a line over
// the iteration index.
//
// Errors: ErrEmptyTrace, plus plotter errors for non-finite values.
func TraceLine(trace []float64) (*plot.Plot, error) {
	if len(trace) == 0 {
		return nil, ErrEmptyTrace
	}

	xys := make(plotter.XYs, len(trace))
	for i, v := range trace {
		xys[i] = plotter.XY{X: float64(i), Y: v}
	}

	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("viz: trace: %w", err)
	}
	l.LineStyle.Color = plotutil.Color(0)

	p := plot.New()
	p.Title.Text = "refinement trace"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "objective"
	p.Add(plotter.NewGrid(), l)

	return p, nil
}
