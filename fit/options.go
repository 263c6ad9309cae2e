// SPDX-License-Identifier: MIT
package fit

import (
	"io"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/optimize"
)

// Defaults.
const (
	DefaultMethod         = "nelder-mead"
	DefaultMaxEvaluations = 20000
	DefaultTolerance      = 1e-10

	// DefaultGradientThreshold stops gradient methods once the infinity
	// norm of the gradient falls below it.
	DefaultGradientThreshold = 1e-8
)

// method builds a fresh minimizer. Gradient methods run on mapped
// coordinates; see rangeMap.
type method struct {
	new      func() optimize.Method
	gradient bool
}

// methods maps a method name to its minimizer.
var methods = map[string]method{
	"nelder-mead":      {new: func() optimize.Method { return &optimize.NelderMead{} }},
	"bfgs":             {new: func() optimize.Method { return &optimize.BFGS{} }, gradient: true},
	"lbfgs":            {new: func() optimize.Method { return &optimize.LBFGS{} }, gradient: true},
	"gradient-descent": {new: func() optimize.Method { return &optimize.GradientDescent{} }, gradient: true},
}

// Methods lists the supported method names in ascending order.
func Methods() []string {
	out := make([]string, 0, len(methods))
	for k := range methods {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Option configures Run.
type Option func(*options)

type options struct {
	method    string
	maxEvals  int
	starts    int
	seed      uint64
	tolerance float64
	gradTol   float64
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		method:    DefaultMethod,
		maxEvals:  DefaultMaxEvaluations,
		starts:    1,
		seed:      1,
		tolerance: DefaultTolerance,
		gradTol:   DefaultGradientThreshold,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithMethod selects the minimizer by name; see Methods.
func WithMethod(name string) Option {
	return func(o *options) { o.method = name }
}

// WithMaxEvaluations caps cost evaluations per start. Non-positive values are ignored.
func WithMaxEvaluations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxEvals = n
		}
	}
}

// WithStarts sets the number of start points; the first is always the
// current parameter values. Values below 1 are ignored.
func WithStarts(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.starts = n
		}
	}
}

// WithSeed seeds the random start points.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithTolerance sets the absolute and relative cost convergence tolerance.
// Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithGradientThreshold sets the gradient norm at which gradient methods
// stop. Non-positive values are ignored.
func WithGradientThreshold(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.gradTol = tol
		}
	}
}

// WithLogger sets the progress logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
