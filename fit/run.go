// SPDX-License-Identifier: MIT
package fit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/lvfit/assembly"
	"github.com/katalvlaran/lvfit/parameter"
)

// Result is the outcome of Run.
type Result struct {
	ID     uuid.UUID
	Method string

	// Parameters are the fitted parameters in FitParameters order, and
	// Stderr their standard errors (NaN when the covariance failed).
	Parameters []parameter.FitParameter
	Stderr     []float64
	// Computed are the constrained parameters at the fitted point.
	Computed []parameter.FitParameter
	Cov      *mat.Dense

	Chisq            float64 // pure chi-square at the fitted point
	Cost             float64 // chi-square plus restraint penalties
	DegreesOfFreedom int
	ReducedChisq     float64

	Evaluations int64
	Starts      int
	Status      string // gonum termination status of the best start
	Converged   bool   // false when the best start ended in a minimizer failure
	Runtime     time.Duration
}

// runner carries the state of one Run call.
type runner struct {
	ctx  context.Context
	asm  *assembly.Assembly
	fps  []parameter.FitParameter
	opts options

	restrained bool
	err        error

	// mapped is set for gradient methods, which minimize over rm's
	// coordinates instead of the parameter values.
	mapped bool
	rm     rangeMap
	x, dx  []float64

	bestX []float64
	bestF float64
}

// Run minimizes the cost of a and leaves a at the best point found.
// When the best start ends in a minimizer failure Run returns the Result
// together with ErrNotConverged.
func Run(ctx context.Context, a *assembly.Assembly, opts ...Option) (*Result, error) {
	// 1. Options and method
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m, ok := methods[o.method]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownMethod, o.method, Methods())
	}

	// 2. Fix the parameter layout
	fps, err := a.FitParameters()
	if err != nil {
		return nil, err
	}
	if len(fps) == 0 {
		return nil, ErrNoParameters
	}
	r := &runner{
		ctx:        ctx,
		asm:        a,
		fps:        fps,
		opts:       o,
		restrained: len(a.ParameterSet().Restrained()) > 0,
		bestF:      math.Inf(1),
		mapped:     m.gradient,
		rm:         newRangeMap(fps),
		x:          make([]float64, len(fps)),
		dx:         make([]float64, len(fps)),
	}

	// 3. Cancellation reaches the running evaluation
	stop := context.AfterFunc(ctx, a.Abort)
	defer stop()

	began := time.Now()
	evals := a.Evaluations()
	o.logger.Info("fit started", "method", o.method, "parameters", len(fps), "starts", o.starts)

	// 4. Minimize from every start point
	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	status := optimize.NotTerminated
	for s := 0; s < o.starts; s++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fit: %w", err)
		}
		x0 := r.startPoint(s, rng)
		before := r.bestF
		res, err := optimize.Minimize(r.problem(), x0, r.settings(), m.new())
		if r.err != nil {
			return nil, r.err
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fit: %w", ctx.Err())
		}
		if err != nil {
			o.logger.Warn("fit: minimizer stopped", "start", s, "error", err)
		}
		if r.bestF < before {
			if res != nil {
				status = res.Status
			}
			o.logger.Info("fit improved", "start", s, "cost", r.bestF)
		}
		o.logger.Debug("fit: start finished", "start", s, "best", r.bestF)
	}
	if r.bestX == nil {
		return nil, ErrNoResult
	}

	// 5. Apply, estimate uncertainties, refresh the report
	res, err := r.finish()
	if err != nil {
		return nil, err
	}
	res.Method = o.method
	res.Starts = o.starts
	res.Status = status.String()
	res.Converged = status != optimize.Failure
	res.Evaluations = a.Evaluations() - evals
	res.Runtime = time.Since(began)
	o.logger.Info("fit finished",
		"id", res.ID, "chisq", res.Chisq, "reduced_chisq", res.ReducedChisq, "evaluations", res.Evaluations)
	if !res.Converged {
		o.logger.Warn("fit: best start did not converge", "status", res.Status)
		return res, ErrNotConverged
	}

	return res, nil
}

// problem wraps the assembly cost for gonum/optimize.
func (r *runner) problem() optimize.Problem {
	return optimize.Problem{
		Func: r.cost,
		Grad: r.grad,
		Status: func() (optimize.Status, error) {
			if r.err != nil {
				return optimize.Failure, r.err
			}
			if err := r.ctx.Err(); err != nil {
				return optimize.Failure, err
			}
			return optimize.NotTerminated, nil
		},
	}
}

func (r *runner) settings() *optimize.Settings {
	return &optimize.Settings{
		FuncEvaluations:   r.opts.maxEvals,
		GradientThreshold: r.opts.gradTol,
		Converger: &optimize.FunctionConverge{
			Absolute:   r.opts.tolerance,
			Relative:   r.opts.tolerance,
			Iterations: 100,
		},
	}
}

// external returns the parameter values for the minimizer point u.
func (r *runner) external(u []float64) []float64 {
	if !r.mapped {
		return u
	}
	r.rm.toExternal(r.x, nil, u)

	return r.x
}

// cost evaluates the minimizer point u; see costAt.
func (r *runner) cost(u []float64) float64 {
	return r.costAt(r.external(u))
}

// costAt is +Inf outside the parameter ranges, after cancellation or after
// an evaluation error; otherwise Assembly.Call. The best point is tracked here.
func (r *runner) costAt(x []float64) float64 {
	if r.err != nil || r.ctx.Err() != nil {
		return math.Inf(1)
	}
	for i, p := range r.fps {
		if !p.Range.Contains(x[i]) {
			return math.Inf(1)
		}
	}
	v, err := r.asm.Call(x)
	if err != nil {
		r.err = err
		return math.Inf(1)
	}
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	if v < r.bestF {
		r.bestF = v
		r.bestX = append(r.bestX[:0], x...)
	}

	return v
}

// grad fills grad with the cost gradient at the minimizer point u,
// applying dx/du on mapped coordinates.
func (r *runner) grad(grad, u []float64) {
	if r.restrained {
		fd.Gradient(grad, r.cost, u, &fd.Settings{Formula: fd.Central})
		return
	}
	x := u
	if r.mapped {
		r.rm.toExternal(r.x, r.dx, u)
		x = r.x
	}
	res, err := r.asm.FResiduals(x)
	if err == nil {
		var J *mat.Dense
		J, err = r.asm.Jacobian(x, 0)
		if err == nil {
			g := mat.NewVecDense(len(grad), grad)
			g.MulVec(J.T(), mat.NewVecDense(len(res), res))
			g.ScaleVec(2, g)
			if r.mapped {
				for i := range grad {
					grad[i] *= r.dx[i]
				}
			}
			return
		}
	}
	if !errors.Is(err, assembly.ErrAborted) && !errors.Is(err, assembly.ErrInfeasible) {
		r.err = err
	}
	for i := range grad {
		grad[i] = math.NaN()
	}
}

// startPoint returns the current values for s == 0 and otherwise a uniform
// draw inside each finite range, as minimizer coordinates.
func (r *runner) startPoint(s int, rng *rand.Rand) []float64 {
	x := make([]float64, len(r.fps))
	for i, p := range r.fps {
		x[i] = p.Value
		if s > 0 && p.Range.IsFinite() {
			x[i] = p.Range.Lo + rng.Float64()*p.Range.Width()
		}
		x[i] = p.Range.Clip(x[i])
	}
	if r.mapped {
		return r.rm.toInternal(x)
	}

	return x
}

// finish writes the best point back and builds the Result.
func (r *runner) finish() (*Result, error) {
	best := make([]parameter.FitParameter, len(r.fps))
	for i, p := range r.fps {
		best[i] = parameter.FitParameter{Name: p.Name, Range: p.Range, Value: r.bestX[i]}
	}
	if err := r.asm.SetResult(best); err != nil {
		return nil, err
	}

	stderr := make([]float64, len(best))
	cov, err := r.asm.Cov(r.bestX)
	if err != nil {
		r.opts.logger.Warn("fit: covariance unavailable", "error", err)
		cov = nil
		for i := range stderr {
			stderr[i] = math.NaN()
		}
	} else {
		for i := range stderr {
			stderr[i] = math.Sqrt(cov.At(i, i))
		}
	}

	// leave residuals and chisq describing the fitted point
	cost, err := r.asm.Call(r.bestX)
	if err != nil {
		return nil, err
	}
	all := r.asm.AllResults(best)
	res := &Result{
		ID:               uuid.New(),
		Parameters:       best,
		Stderr:           stderr,
		Computed:         all[len(best):],
		Cov:              cov,
		Chisq:            r.asm.Chisq(),
		Cost:             cost,
		DegreesOfFreedom: r.asm.DegreesOfFreedom(),
	}
	res.ReducedChisq = res.Chisq / float64(res.DegreesOfFreedom)

	return res, nil
}
