package parameter

import (
	"fmt"
	"strings"
)

// Parameter is a named scalar shared by a model and the fitting machinery.
//
// Value is the current-value register: the optimizer writes fitted values into
// it, the expression evaluator writes computed values into it, and models read
// it. Everything else is changed through the setters so the status stays
// consistent with the range and expression.
type Parameter struct {
	Value float64

	name       string
	path       string
	status     Status
	rng        Range
	expression string
	restraint  Restraint
}

// New returns a fixed parameter with an unbounded range.
// The path equals the name until a Set assigns a prefix.
func New(name string, value float64) *Parameter {
	return &Parameter{
		Value:  value,
		name:   name,
		path:   name,
		status: Fixed,
		rng:    Unbounded(),
	}
}

// Name returns the local name.
func (p *Parameter) Name() string { return p.name }

// Path returns the dotted path assigned by the owning Set.
func (p *Parameter) Path() string { return p.path }

// Status returns how the value is obtained.
func (p *Parameter) Status() Status { return p.status }

// Range returns the fit range.
func (p *Parameter) Range() Range { return p.rng }

// Expression returns the constraint expression, empty unless computed.
func (p *Parameter) Expression() string { return p.expression }

// Restraint returns the attached restraint or nil.
func (p *Parameter) Restraint() Restraint { return p.restraint }

// IsFixed reports whether the value is held constant.
func (p *Parameter) IsFixed() bool { return p.status == Fixed }

// IsFitted reports whether the optimizer varies the value.
func (p *Parameter) IsFitted() bool { return p.status == Fitted }

// IsComputed reports whether the value comes from an expression.
func (p *Parameter) IsComputed() bool { return p.status == Computed }

// IsRestrained reports whether a restraint is attached. It combines with any status.
func (p *Parameter) IsRestrained() bool { return p.restraint != nil }

// Set configures the parameter from a loosely typed setting:
//
//	float64, float32, int, int64        -> fixed at that value
//	Range, [2]float64, []float64{lo,hi} -> fitted within the range
//	string                              -> computed from the expression
//
// Any other type yields ErrBadSetting.
func (p *Parameter) Set(v any) error {
	switch x := v.(type) {
	case float64:
		p.SetValue(x)
	case float32:
		p.SetValue(float64(x))
	case int:
		p.SetValue(float64(x))
	case int64:
		p.SetValue(float64(x))
	case Range:
		return p.SetRange(x.Lo, x.Hi)
	case [2]float64:
		return p.SetRange(x[0], x[1])
	case []float64:
		if len(x) != 2 {
			return fmt.Errorf("%w: range for %q needs 2 bounds, got %d", ErrBadSetting, p.name, len(x))
		}
		return p.SetRange(x[0], x[1])
	case string:
		return p.SetExpression(x)
	default:
		return fmt.Errorf("%w: %T for %q", ErrBadSetting, v, p.name)
	}

	return nil
}

// SetValue fixes the parameter at v.
func (p *Parameter) SetValue(v float64) {
	p.Value = v
	p.status = Fixed
	p.expression = ""
}

// SetRange makes the parameter fitted within [lo, hi]. The current value is kept.
func (p *Parameter) SetRange(lo, hi float64) error {
	r, err := NewRange(lo, hi)
	if err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	p.rng = r
	p.status = Fitted
	p.expression = ""

	return nil
}

// SetExpression makes the parameter computed from expr.
// The expression is only parsed when the fitting problem is prepared.
func (p *Parameter) SetExpression(expr string) error {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return fmt.Errorf("%w: empty expression for %q", ErrBadSetting, p.name)
	}
	p.expression = expr
	p.status = Computed

	return nil
}

// Fix keeps the current value and range but stops the parameter varying.
func (p *Parameter) Fix() {
	p.status = Fixed
	p.expression = ""
}

// SetRestraint attaches r; nil removes the restraint.
func (p *Parameter) SetRestraint(r Restraint) {
	p.restraint = r
}

// Likelihood returns the restraint penalty at v, or 0 when unrestrained.
func (p *Parameter) Likelihood(v float64) float64 {
	if p.restraint == nil {
		return 0
	}

	return p.restraint.Likelihood(v)
}

// Clone returns a detached copy sharing nothing mutable with p.
func (p *Parameter) Clone() *Parameter {
	c := *p

	return &c
}

// Snapshot returns the (path, range, value) view of p.
func (p *Parameter) Snapshot() FitParameter {
	return FitParameter{Name: p.path, Range: p.rng, Value: p.Value}
}

// String formats the parameter for diagnostics, e.g. "M1.a = 1 in [0, 3]".
func (p *Parameter) String() string {
	switch p.status {
	case Fitted:
		return fmt.Sprintf("%s = %g in %s", p.path, p.Value, p.rng)
	case Computed:
		return fmt.Sprintf("%s = %g := %s", p.path, p.Value, p.expression)
	default:
		return fmt.Sprintf("%s = %g", p.path, p.Value)
	}
}

// Restraint supplies a penalty added to the cost for the current value.
// The penalty scale (log-probability, soft quadratic, ...) is the restraint's choice.
type Restraint interface {
	Likelihood(value float64) float64
}

// Gaussian penalizes distance from Mean: 0.5*((v-Mean)/Sigma)^2.
type Gaussian struct {
	Mean, Sigma float64
}

// Likelihood implements Restraint.
func (g Gaussian) Likelihood(v float64) float64 {
	z := (v - g.Mean) / g.Sigma

	return 0.5 * z * z
}

// SoftBounds is zero inside [Lo, Hi] and rises quadratically outside,
// with Sigma setting the steepness.
type SoftBounds struct {
	Lo, Hi, Sigma float64
}

// Likelihood implements Restraint.
func (s SoftBounds) Likelihood(v float64) float64 {
	var d float64
	switch {
	case v < s.Lo:
		d = s.Lo - v
	case v > s.Hi:
		d = v - s.Hi
	default:
		return 0
	}
	z := d / s.Sigma

	return 0.5 * z * z
}

var (
	_ Restraint = Gaussian{}
	_ Restraint = SoftBounds{}
)
