package viz

import (
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// WritePNG encodes a plot as a PNG of width×height typographic points
// and streams it to w.
//
// Errors: ErrNilPlot, ErrBadSize, plus encoder and writer errors.
func WritePNG(p *plot.Plot, width, height float64, w io.Writer) error {
	if p == nil {
		return ErrNilPlot
	}
	if width <= 0 || height <= 0 {
		return ErrBadSize
	}

	wt, err := p.WriterTo(vg.Points(width), vg.Points(height), "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)

	return err
}
