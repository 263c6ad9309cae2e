// SPDX-License-Identifier: MIT
package assembly

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/lvfit/expression"
	"github.com/katalvlaran/lvfit/parameter"
)

// DefaultJacobianStep is the relative finite-difference step used by Jacobian.
const DefaultJacobianStep = 1e-8

// ExpressionBuilder compiles the constraints of a flattened parameter list.
type ExpressionBuilder func(pars []*parameter.Parameter, ctx expression.Context) (expression.Evaluator, error)

// Option configures an Assembly.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	feasible func() bool
	build    ExpressionBuilder
	step     float64
	symbols  map[string]any
}

func defaultOptions() options {
	return options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		feasible: func() bool { return true },
		build:    expression.BuildEval,
		step:     DefaultJacobianStep,
	}
}

// WithLogger sets the logger for debug events. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFeasibility installs a check run after computed parameters are
// refreshed and before any Part is evaluated. Returning false makes the
// evaluation cost +Inf. Nil is ignored.
func WithFeasibility(fn func() bool) Option {
	return func(o *options) {
		if fn != nil {
			o.feasible = fn
		}
	}
}

// WithSymbols makes the given constants or functions visible to every
// constraint expression. They are kept on the root set across Append, Insert,
// Delete and Replace; the map is copied.
func WithSymbols(symbols map[string]any) Option {
	return func(o *options) {
		o.symbols = make(map[string]any, len(symbols))
		for k, v := range symbols {
			o.symbols[k] = v
		}
	}
}

// WithExpressionBuilder replaces expression.BuildEval. Nil is ignored.
func WithExpressionBuilder(b ExpressionBuilder) Option {
	return func(o *options) {
		if b != nil {
			o.build = b
		}
	}
}

// WithJacobianStep sets the default relative step of Jacobian.
// Panics if step is not positive.
func WithJacobianStep(step float64) Option {
	if !(step > 0) {
		panic("assembly: WithJacobianStep requires step > 0")
	}

	return func(o *options) { o.step = step }
}
