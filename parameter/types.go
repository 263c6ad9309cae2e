package parameter

import (
	"fmt"
	"math"
)

// Status tells how a parameter obtains its value during a fit.
type Status int

const (
	// Fixed parameters keep their value.
	Fixed Status = iota
	// Fitted parameters are varied by the optimizer within their Range.
	Fitted
	// Computed parameters are derived from an expression over other parameters.
	Computed
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case Fixed:
		return "fixed"
	case Fitted:
		return "fitted"
	case Computed:
		return "computed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Range is a closed fitting interval [Lo, Hi]. Either bound may be infinite.
type Range struct {
	Lo, Hi float64
}

// Unbounded returns [-Inf, +Inf].
func Unbounded() Range {
	return Range{Lo: math.Inf(-1), Hi: math.Inf(1)}
}

// NewRange validates lo and hi and returns the Range.
func NewRange(lo, hi float64) (Range, error) {
	r := Range{Lo: lo, Hi: hi}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}

	return r, nil
}

// Validate reports ErrBadRange for NaN bounds or Lo > Hi.
func (r Range) Validate() error {
	if math.IsNaN(r.Lo) || math.IsNaN(r.Hi) {
		return fmt.Errorf("%w: NaN bound", ErrBadRange)
	}
	if r.Lo > r.Hi {
		return fmt.Errorf("%w: lo %g > hi %g", ErrBadRange, r.Lo, r.Hi)
	}

	return nil
}

// IsFinite reports whether both bounds are finite.
func (r Range) IsFinite() bool {
	return !math.IsInf(r.Lo, 0) && !math.IsInf(r.Hi, 0)
}

// Width returns Hi-Lo, which is +Inf when either bound is infinite.
func (r Range) Width() float64 {
	return r.Hi - r.Lo
}

// Contains reports whether v lies in [Lo, Hi].
func (r Range) Contains(v float64) bool {
	return v >= r.Lo && v <= r.Hi
}

// Clip returns v limited to [Lo, Hi].
func (r Range) Clip(v float64) float64 {
	return math.Min(math.Max(v, r.Lo), r.Hi)
}

// String formats the range as "[lo, hi]".
func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Lo, r.Hi)
}

// FitParameter is a detached snapshot of a fitted parameter. Changing it
// never affects the live Parameter it was taken from.
type FitParameter struct {
	Name  string  // dotted path of the source parameter
	Range Range   // fit range at snapshot time
	Value float64 // value at snapshot time
}
