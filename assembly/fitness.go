// SPDX-License-Identifier: MIT
package assembly

import "github.com/katalvlaran/lvfit/parameter"

// EvalFunc computes model values at x.
type EvalFunc = func(x []float64) ([]float64, error)

// DerivFunc computes model values at x and their derivatives with respect to
// the named parameters, one row per parameter.
type DerivFunc = func(x []float64, pars []string) ([]float64, [][]float64, error)

// Model is a theory function with named parameters.
type Model interface {
	// ParameterSet returns the live parameter set; the Assembly parents it under its root.
	ParameterSet() *parameter.Set
	// Eval computes the theory at x.
	Eval(x []float64) ([]float64, error)
	// Set applies named settings (value, range or expression) and fails
	// with parameter.ErrUnknownParameter for an unknown name.
	Set(settings map[string]any) error
}

// DerivModel is a Model that also provides analytic derivatives.
type DerivModel interface {
	Model
	EvalDerivs(x []float64, pars []string) ([]float64, [][]float64, error)
}

// Aborter is implemented by models that can be asked to stop a running evaluation.
type Aborter interface {
	Abort()
}

// Data compares model values with measurements.
type Data interface {
	// Residuals returns the signed, error-normalized residuals of fn.
	Residuals(fn EvalFunc) ([]float64, error)
	// ResidualsDeriv returns the residuals of fn and their derivatives with
	// respect to pars.
	ResidualsDeriv(fn DerivFunc, pars []string) ([]float64, [][]float64, error)
}

// Fitness binds one Model to one Data object.
// Optional model capabilities are detected once, in NewFitness.
type Fitness struct {
	model   Model
	data    Data
	deriv   DerivModel
	aborter Aborter
}

// NewFitness pairs m with d.
func NewFitness(m Model, d Data) (*Fitness, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if d == nil {
		return nil, ErrNilData
	}
	f := &Fitness{model: m, data: d}
	f.deriv, _ = m.(DerivModel)
	f.aborter, _ = m.(Aborter)

	return f, nil
}

// Model returns the bound model.
func (f *Fitness) Model() Model { return f.model }

// Data returns the bound data.
func (f *Fitness) Data() Data { return f.data }

// ParameterSet is the model's parameter set.
func (f *Fitness) ParameterSet() *parameter.Set { return f.model.ParameterSet() }

// Name is the model's parameter set name.
func (f *Fitness) Name() string { return f.model.ParameterSet().Name() }

// HasDerivatives reports whether ResidualsDeriv is available.
func (f *Fitness) HasDerivatives() bool { return f.deriv != nil }

// CanAbort reports whether Abort reaches the model.
func (f *Fitness) CanAbort() bool { return f.aborter != nil }

// Residuals evaluates the model through the data object.
// Model and data errors are returned unchanged.
func (f *Fitness) Residuals() ([]float64, error) {
	return f.data.Residuals(f.model.Eval)
}

// ResidualsDeriv returns residuals and analytic residual derivatives for pars.
func (f *Fitness) ResidualsDeriv(pars []string) ([]float64, [][]float64, error) {
	if f.deriv == nil {
		return nil, nil, ErrNoDerivatives
	}

	return f.data.ResidualsDeriv(f.deriv.EvalDerivs, pars)
}

// Set forwards named settings to the model. Errors are returned unchanged.
func (f *Fitness) Set(settings map[string]any) error {
	return f.model.Set(settings)
}

// Abort forwards to the model when it supports it. It never panics.
func (f *Fitness) Abort() {
	if f.aborter == nil {
		return
	}
	defer func() { _ = recover() }()
	f.aborter.Abort()
}
