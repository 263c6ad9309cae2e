package data

import (
	"fmt"
	"math"
)

// Data1D is a one-dimensional data set. X and Y are required; DX and DY may
// be nil. Treat the columns as read-only after construction.
type Data1D struct {
	X, Y, DX, DY []float64

	sel []int // selected indices, nil for all points

	// CalcY is the theory computed by the last Residuals call.
	CalcY []float64
}

// NewData1D validates the columns and returns the data set with all points selected.
func NewData1D(x, y, dx, dy []float64) (*Data1D, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmpty
	}
	if len(y) != n || (dx != nil && len(dx) != n) || (dy != nil && len(dy) != n) {
		return nil, fmt.Errorf("%w: x=%d y=%d dx=%d dy=%d", ErrLengthMismatch, n, len(y), len(dx), len(dy))
	}
	for i, s := range dy {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: dy[%d]=%g", ErrBadUncertainty, i, s)
		}
	}

	return &Data1D{X: x, Y: y, DX: dx, DY: dy}, nil
}

// Len returns the number of selected points.
func (d *Data1D) Len() int {
	if d.sel == nil {
		return len(d.X)
	}

	return len(d.sel)
}

// Select restricts fitting to the given point indices; nil selects all points.
func (d *Data1D) Select(idx []int) error {
	if idx == nil {
		d.sel = nil
		return nil
	}
	for _, i := range idx {
		if i < 0 || i >= len(d.X) {
			return fmt.Errorf("%w: %d not in [0, %d)", ErrBadIndex, i, len(d.X))
		}
	}
	d.sel = append([]int{}, idx...)

	return nil
}

// SelectRange selects the points with lo <= x <= hi.
func (d *Data1D) SelectRange(lo, hi float64) error {
	idx := []int{}
	for i, x := range d.X {
		if x >= lo && x <= hi {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return fmt.Errorf("%w: none in [%g, %g]", ErrEmpty, lo, hi)
	}
	d.sel = idx

	return nil
}

// FitX returns the selected x values.
func (d *Data1D) FitX() []float64 { return d.pick(d.X) }

// FitY returns the selected y values.
func (d *Data1D) FitY() []float64 { return d.pick(d.Y) }

// FitDY returns the selected uncertainties, ones when DY is nil.
func (d *Data1D) FitDY() []float64 {
	if d.DY == nil {
		out := make([]float64, d.Len())
		for i := range out {
			out[i] = 1
		}
		return out
	}

	return d.pick(d.DY)
}

func (d *Data1D) pick(col []float64) []float64 {
	if d.sel == nil {
		return col
	}
	out := make([]float64, len(d.sel))
	for i, j := range d.sel {
		out[i] = col[j]
	}

	return out
}

// Residuals evaluates fn at the selected x and returns (y - fn(x)) / dy.
func (d *Data1D) Residuals(fn func(x []float64) ([]float64, error)) ([]float64, error) {
	x := d.FitX()
	fx, err := fn(x)
	if err != nil {
		return nil, err
	}
	if len(fx) != len(x) {
		return nil, fmt.Errorf("%w: %d values for %d points", ErrTheoryLength, len(fx), len(x))
	}
	d.CalcY = fx

	return d.residuals(fx), nil
}

// ResidualsDeriv evaluates fn at the selected x and returns the residuals
// together with dR/dp = -(df/dp)/dy for every parameter in pars.
func (d *Data1D) ResidualsDeriv(
	fn func(x []float64, pars []string) ([]float64, [][]float64, error),
	pars []string,
) ([]float64, [][]float64, error) {
	x := d.FitX()
	fx, df, err := fn(x, pars)
	if err != nil {
		return nil, nil, err
	}
	if len(fx) != len(x) || len(df) != len(pars) {
		return nil, nil, fmt.Errorf("%w: %d values, %d derivative rows for %d points, %d parameters",
			ErrTheoryLength, len(fx), len(df), len(x), len(pars))
	}
	d.CalcY = fx
	dy := d.FitDY()
	dr := make([][]float64, len(df))
	for k, row := range df {
		if len(row) != len(x) {
			return nil, nil, fmt.Errorf("%w: derivative %s", ErrTheoryLength, pars[k])
		}
		dr[k] = make([]float64, len(row))
		for i, v := range row {
			dr[k][i] = -v / dy[i]
		}
	}

	return d.residuals(fx), dr, nil
}

func (d *Data1D) residuals(fx []float64) []float64 {
	y, dy := d.FitY(), d.FitDY()
	r := make([]float64, len(fx))
	for i := range r {
		r[i] = (y[i] - fx[i]) / dy[i]
	}

	return r
}
