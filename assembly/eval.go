// SPDX-License-Identifier: MIT
package assembly

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvfit/parameter"
)

// Eval recomputes every enabled Part at the current parameter values and
// returns the total chi-square.
//
// Behavior highlights:
//   - Computed parameters are refreshed before any Part is touched.
//   - An infeasible point or an Abort yields +Inf with a nil error; State
//     reports which one happened. Partial results are discarded.
//   - Disabled Parts are skipped and keep their previous report.
//   - Model, data and constraint errors are returned unchanged.
//
// Errors: ErrNotPrepared, ErrInvalidWeight, or the collaborator's error.
func (a *Assembly) Eval() (float64, error) {
	if !a.prepared {
		return math.NaN(), assemblyErrorf(opEval, ErrNotPrepared)
	}
	// 1. Re-arm cancellation
	a.cancel.Store(false)
	a.state.Store(int32(StateRunning))
	a.evals.Add(1)

	// 2. Push free values through the constraint graph
	if err := a.fitExpr(); err != nil {
		a.state.Store(int32(StateFailed))
		return math.NaN(), err
	}
	// 3. Cheap rejection before any model runs
	if !a.opts.feasible() {
		a.state.Store(int32(StateInfeasible))
		a.opts.logger.Debug("assembly: infeasible point")
		return math.Inf(1), nil
	}

	// 4. Aggregate the enabled Parts in order
	k := len(a.fitParams)
	resid := make([]float64, 0, len(a.residuals))
	for _, p := range a.parts {
		a.current.Store(p)
		if a.cancel.Load() {
			a.current.Store(nil)
			a.state.Store(int32(StateAborted))
			a.opts.logger.Debug("assembly: evaluation aborted")
			return math.Inf(1), nil
		}
		if !p.active() {
			continue
		}
		if err := validateWeight(p.Weight); err != nil {
			a.current.Store(nil)
			a.state.Store(int32(StateFailed))
			return math.NaN(), assemblyErrorf(opEval, fmt.Errorf("part %q: %w", p.Fitness.Name(), err))
		}
		r, err := p.Fitness.Residuals()
		if err != nil {
			a.current.Store(nil)
			a.state.Store(int32(StateFailed))
			return math.NaN(), err
		}
		p.Residuals = r
		p.DegreesOfFreedom = dof(len(r), k)
		p.Chisq = floats.Dot(r, r)

		start := len(resid)
		resid = append(resid, r...)
		floats.Scale(p.Weight, resid[start:])
	}
	a.current.Store(nil)

	// 5. Totals
	a.residuals = resid
	a.dof = dof(len(resid), k)
	a.chisq = floats.Dot(resid, resid)
	a.state.Store(int32(StateCompleted))

	return a.chisq, nil
}

// Call is the cost function handed to an optimizer: it writes pvec into the
// fitted parameters, evaluates, and returns chi-square plus the restraint
// penalties. Read Chisq for the pure chi-square.
func (a *Assembly) Call(pvec []float64) (float64, error) {
	if err := a.load(pvec); err != nil {
		return math.NaN(), assemblyErrorf(opCall, err)
	}
	chisq, err := a.Eval()
	if err != nil {
		return chisq, err
	}
	penalty := 0.0
	for _, p := range a.restraints {
		penalty += p.Likelihood(p.Value)
	}

	return chisq + penalty, nil
}

// FResiduals writes pvec into the fitted parameters, evaluates, and returns a
// copy of the weighted residual vector.
func (a *Assembly) FResiduals(pvec []float64) ([]float64, error) {
	if err := a.load(pvec); err != nil {
		return nil, assemblyErrorf(opFResiduals, err)
	}
	if err := a.evalStrict(); err != nil {
		return nil, assemblyErrorf(opFResiduals, err)
	}
	out := make([]float64, len(a.residuals))
	copy(out, a.residuals)

	return out, nil
}

// load checks the vector length and assigns it in FitParameters order.
func (a *Assembly) load(pvec []float64) error {
	if !a.prepared {
		return ErrNotPrepared
	}
	if len(pvec) != len(a.fitParams) {
		return fmt.Errorf("%w: got %d, want %d", ErrParameterCount, len(pvec), len(a.fitParams))
	}
	for i, v := range pvec {
		a.fitParams[i].Value = v
	}

	return nil
}

// evalStrict runs Eval and turns the +Inf outcomes into errors.
func (a *Assembly) evalStrict() error {
	if _, err := a.Eval(); err != nil {
		return err
	}
	switch a.State() {
	case StateAborted:
		return ErrAborted
	case StateInfeasible:
		return ErrInfeasible
	}

	return nil
}

// Abort asks the running evaluation to stop at the next Part boundary and
// forwards the request to the model being evaluated. It does not wait.
// Safe to call from any goroutine.
func (a *Assembly) Abort() {
	a.cancel.Store(true)
	if p := a.current.Load(); p != nil {
		p.Fitness.Abort()
	}
}

// SetResult writes fitted values back, in FitParameters order, and refreshes
// the computed parameters. It does not re-evaluate the Parts.
func (a *Assembly) SetResult(params []parameter.FitParameter) error {
	if !a.prepared {
		return assemblyErrorf(opSetResult, ErrNotPrepared)
	}
	if len(params) != len(a.fitParams) {
		return assemblyErrorf(opSetResult,
			fmt.Errorf("%w: got %d, want %d", ErrParameterCount, len(params), len(a.fitParams)))
	}
	for i, p := range params {
		a.fitParams[i].Value = p.Value
	}

	return a.fitExpr()
}

// AllResults returns params followed by one snapshot per computed parameter.
// params itself is not modified.
func (a *Assembly) AllResults(params []parameter.FitParameter) []parameter.FitParameter {
	computed := a.root.Computed()
	out := make([]parameter.FitParameter, 0, len(params)+len(computed))
	out = append(out, params...)
	for _, p := range computed {
		out = append(out, p.Snapshot())
	}

	return out
}
