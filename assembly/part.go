// SPDX-License-Identifier: MIT
package assembly

import (
	"fmt"
	"math"
)

// Part is one Fitness plus its fitting policy and its last evaluation report.
//
// A disabled Part (IsFitted false or Weight 0) keeps its parameters live for
// constraint expressions but contributes no residuals. Its Residuals, Chisq
// and DegreesOfFreedom keep the values of the last evaluation in which it
// took part.
type Part struct {
	Fitness  *Fitness
	Weight   float64 // scales the Part's residuals; must be >= 0
	IsFitted bool

	Residuals        []float64 // unweighted; nil before the first evaluation
	Chisq            float64   // sum of squared Residuals; +Inf before the first evaluation
	DegreesOfFreedom int       // max(1, len(Residuals) - #fitted parameters)
}

// PartOption configures a Part added to an Assembly.
type PartOption func(*Part)

// WithWeight sets the Part weight (default 1).
func WithWeight(w float64) PartOption {
	return func(p *Part) { p.Weight = w }
}

// WithFitted sets whether the Part contributes residuals (default true).
func WithFitted(fitted bool) PartOption {
	return func(p *Part) { p.IsFitted = fitted }
}

// newPart builds a Part with defaults, applies opts and validates the weight.
func newPart(f *Fitness, opts ...PartOption) (*Part, error) {
	if f == nil {
		return nil, ErrNilFitness
	}
	p := &Part{
		Fitness:          f,
		Weight:           1,
		IsFitted:         true,
		Chisq:            math.Inf(1),
		DegreesOfFreedom: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := validateWeight(p.Weight); err != nil {
		return nil, err
	}

	return p, nil
}

// validateWeight rejects negative and NaN weights.
func validateWeight(w float64) error {
	if math.IsNaN(w) || w < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidWeight, w)
	}

	return nil
}

// active reports whether the Part contributes residuals.
func (p *Part) active() bool {
	return p.IsFitted && p.Weight != 0
}

// dof is the degrees-of-freedom rule shared by Parts and the Assembly.
func dof(n, k int) int {
	if n > k {
		return n - k
	}

	return 1
}
