package model

import (
	"math"

	"github.com/katalvlaran/lvfit/parameter"
)

// Linear is y = a*x + b.
type Linear struct{ Base }

// NewLinear returns a Linear model with a=1, b=0.
func NewLinear(name string) (*Linear, error) {
	b, err := newBase(name, parameter.New("a", 1), parameter.New("b", 0))
	if err != nil {
		return nil, err
	}

	return &Linear{Base: b}, nil
}

// Eval implements Model.
func (m *Linear) Eval(x []float64) ([]float64, error) {
	a, b := m.value("a"), m.value("b")
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = a*xi + b
	}

	return y, nil
}

// Exp is y = a*exp(c*x).
type Exp struct{ Base }

// NewExp returns an Exp model with a=1, c=1.
func NewExp(name string) (*Exp, error) {
	b, err := newBase(name, parameter.New("a", 1), parameter.New("c", 1))
	if err != nil {
		return nil, err
	}

	return &Exp{Base: b}, nil
}

// Eval implements Model.
func (m *Exp) Eval(x []float64) ([]float64, error) {
	a, c := m.value("a"), m.value("c")
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = a * math.Exp(c*xi)
	}

	return y, nil
}

// PowerLaw is y = scale * x^(-power) + background.
type PowerLaw struct{ Base }

// NewPowerLaw returns a PowerLaw model with scale=1, power=4, background=0.
func NewPowerLaw(name string) (*PowerLaw, error) {
	b, err := newBase(name,
		parameter.New("scale", 1), parameter.New("power", 4), parameter.New("background", 0))
	if err != nil {
		return nil, err
	}

	return &PowerLaw{Base: b}, nil
}

// Eval implements Model. Non-positive x gives ErrDomain.
func (m *PowerLaw) Eval(x []float64) ([]float64, error) {
	scale, power, bg := m.value("scale"), m.value("power"), m.value("background")
	y := make([]float64, len(x))
	for i, xi := range x {
		if xi <= 0 {
			return nil, domainError(m.Name(), xi)
		}
		y[i] = scale*math.Pow(xi, -power) + bg
	}

	return y, nil
}

// Gauss is y = scale*exp(-(x-center)^2 / (2 width^2)) + background.
// It provides analytic derivatives.
type Gauss struct{ Base }

// NewGauss returns a Gauss model with scale=1, center=0, width=1, background=0.
func NewGauss(name string) (*Gauss, error) {
	b, err := newBase(name,
		parameter.New("scale", 1), parameter.New("center", 0),
		parameter.New("width", 1), parameter.New("background", 0))
	if err != nil {
		return nil, err
	}

	return &Gauss{Base: b}, nil
}

// Eval implements Model.
func (m *Gauss) Eval(x []float64) ([]float64, error) {
	y, _, err := m.EvalDerivs(x, nil)

	return y, err
}

// EvalDerivs returns y and dy/dp for each named parameter.
func (m *Gauss) EvalDerivs(x []float64, pars []string) ([]float64, [][]float64, error) {
	scale, center, width, bg := m.value("scale"), m.value("center"), m.value("width"), m.value("background")
	for _, name := range pars {
		if _, err := m.Param(name); err != nil {
			return nil, nil, err
		}
	}
	y := make([]float64, len(x))
	dy := make([][]float64, len(pars))
	for k := range dy {
		dy[k] = make([]float64, len(x))
	}
	for i, xi := range x {
		u := (xi - center) / width
		g := math.Exp(-0.5 * u * u)
		y[i] = scale*g + bg
		for k, name := range pars {
			switch name {
			case "scale":
				dy[k][i] = g
			case "center":
				dy[k][i] = scale * g * u / width
			case "width":
				dy[k][i] = scale * g * u * u / width
			case "background":
				dy[k][i] = 1
			}
		}
	}

	return y, dy, nil
}
