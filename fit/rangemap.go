// SPDX-License-Identifier: MIT
package fit

import (
	"math"

	"github.com/katalvlaran/lvfit/parameter"
)

// startMargin keeps mapped start points off the bounds, where the mapping
// has a zero derivative and a gradient method would not move.
const startMargin = 1e-4

// rangeMap maps the parameter ranges onto unbounded coordinates so that
// gradient methods can reach a bound without a line search crossing it.
//
//	[lo, hi]   x = lo + (hi-lo)(1+sin u)/2
//	[lo, +Inf) x = lo - 1 + sqrt(u²+1)
//	(-Inf, hi] x = hi + 1 - sqrt(u²+1)
//	unbounded  x = u
type rangeMap []parameter.Range

func newRangeMap(fps []parameter.FitParameter) rangeMap {
	m := make(rangeMap, len(fps))
	for i, p := range fps {
		m[i] = p.Range
	}

	return m
}

// toExternal writes the parameter values for u into x and, when dxdu is not
// nil, the derivative of each value with respect to its coordinate.
func (m rangeMap) toExternal(x, dxdu, u []float64) {
	for i, r := range m {
		lo, hi := !math.IsInf(r.Lo, 0), !math.IsInf(r.Hi, 0)
		var v, d float64
		switch {
		case lo && hi:
			half := r.Width() / 2
			v = r.Lo + half*(1+math.Sin(u[i]))
			d = half * math.Cos(u[i])
		case lo:
			s := math.Hypot(u[i], 1)
			v = r.Lo - 1 + s
			d = u[i] / s
		case hi:
			s := math.Hypot(u[i], 1)
			v = r.Hi + 1 - s
			d = -u[i] / s
		default:
			v, d = u[i], 1
		}
		x[i] = r.Clip(v)
		if dxdu != nil {
			dxdu[i] = d
		}
	}
}

// toInternal returns the coordinates of x, moving points that sit on a
// bound slightly inside it.
func (m rangeMap) toInternal(x []float64) []float64 {
	u := make([]float64, len(m))
	for i, r := range m {
		v := r.Clip(x[i])
		lo, hi := !math.IsInf(r.Lo, 0), !math.IsInf(r.Hi, 0)
		switch {
		case lo && hi:
			if r.Width() == 0 {
				u[i] = 0
				continue
			}
			t := 2*(v-r.Lo)/r.Width() - 1
			u[i] = math.Asin(math.Max(-1+startMargin, math.Min(1-startMargin, t)))
		case lo:
			d := math.Max(v-r.Lo, startMargin) + 1
			u[i] = math.Sqrt(d*d - 1)
		case hi:
			d := math.Max(r.Hi-v, startMargin) + 1
			u[i] = math.Sqrt(d*d - 1)
		default:
			u[i] = v
		}
	}

	return u
}
