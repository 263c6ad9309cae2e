// Package plotting renders fitted datasets against their theory curves.
package plotting

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lvfit/data"
)

// Default figure size.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// ErrNoSeries is returned by Save when there is nothing to draw.
var ErrNoSeries = errors.New("plotting: no series")

// Series is one Part: measured points with uncertainties, and the theory at
// the same x. Theory may be empty before the first evaluation.
type Series struct {
	Name   string
	X, Y   []float64
	DY     []float64
	Theory []float64
}

// FromData takes the selected points of d and its last computed theory.
func FromData(name string, d *data.Data1D) Series {
	s := Series{Name: name, X: d.FitX(), Y: d.FitY(), DY: d.FitDY()}
	if len(d.CalcY) == len(s.X) {
		s.Theory = d.CalcY
	}

	return s
}

// errorPoints joins points and symmetric y error bars for plotter.NewYErrorBars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Save draws every series into one figure. The image format follows the
// file extension (.png, .svg, .pdf, ...).
func Save(path, title string, series []Series, width, height vg.Length) error {
	if len(series) == 0 {
		return ErrNoSeries
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.Y) != len(s.X) || (len(s.DY) != 0 && len(s.DY) != len(s.X)) {
			return fmt.Errorf("plotting: series %q: %w", s.Name, data.ErrLengthMismatch)
		}
		pts := make(plotter.XYs, len(s.X))
		for j := range pts {
			pts[j].X, pts[j].Y = s.X[j], s.Y[j]
		}

		// 1. Measured points
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("plotting: series %q: %w", s.Name, err)
		}
		scatter.GlyphStyle.Color = plotutil.Color(i)
		scatter.GlyphStyle.Shape = plotutil.Shape(i)
		p.Add(scatter)
		p.Legend.Add(s.Name, scatter)

		// 2. Uncertainties
		if len(s.DY) != 0 {
			errs := make(plotter.YErrors, len(s.DY))
			for j, dy := range s.DY {
				errs[j].Low, errs[j].High = dy, dy
			}
			bars, err := plotter.NewYErrorBars(errorPoints{XYs: pts, YErrors: errs})
			if err != nil {
				return fmt.Errorf("plotting: series %q: %w", s.Name, err)
			}
			bars.LineStyle.Color = plotutil.Color(i)
			p.Add(bars)
		}

		// 3. Theory
		if len(s.Theory) == len(s.X) {
			curve := make(plotter.XYs, len(s.X))
			for j := range curve {
				curve[j].X, curve[j].Y = s.X[j], s.Theory[j]
			}
			line, err := plotter.NewLine(curve)
			if err != nil {
				return fmt.Errorf("plotting: series %q: %w", s.Name, err)
			}
			line.LineStyle.Color = plotutil.Color(i)
			line.LineStyle.Width = vg.Points(1.5)
			p.Add(line)
		}
	}

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("plotting: %w", err)
	}

	return nil
}
