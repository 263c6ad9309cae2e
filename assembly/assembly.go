// SPDX-License-Identifier: MIT
package assembly

import (
	"fmt"
	"sync/atomic"

	"github.com/katalvlaran/lvfit/expression"
	"github.com/katalvlaran/lvfit/parameter"
)

// RootName is the name of the merged parameter set. It never appears in paths.
const RootName = "root"

// State is the outcome of the most recent evaluation.
type State int32

const (
	StateIdle       State = iota // nothing evaluated yet
	StateRunning                 // inside Eval
	StateCompleted               // finite chi-square produced
	StateAborted                 // stopped by Abort, cost +Inf
	StateInfeasible              // rejected by the feasibility check, cost +Inf
	StateFailed                  // a model, data or constraint error was returned
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	case StateInfeasible:
		return "infeasible"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Assembly is a weighted collection of Parts sharing one parameter tree.
type Assembly struct {
	parts []*Part
	root  *parameter.Set

	residuals []float64
	dof       int
	chisq     float64

	fitParams  []*parameter.Parameter
	restraints []*parameter.Parameter
	fitExpr    expression.Evaluator
	prepared   bool

	cancel  atomic.Bool
	current atomic.Pointer[Part]
	state   atomic.Int32
	evals   atomic.Int64

	opts options
}

// New builds an Assembly with one default Part per Fitness.
func New(fits []*Fitness, opts ...Option) (*Assembly, error) {
	a := &Assembly{opts: defaultOptions(), dof: 1}
	for _, opt := range opts {
		opt(&a.opts)
	}
	for _, f := range fits {
		p, err := newPart(f)
		if err != nil {
			return nil, err
		}
		a.parts = append(a.parts, p)
	}
	a.reset()

	return a, nil
}

// reset rebuilds the root set from the current Parts, in Part order, and
// assigns fresh paths. Parameter values are untouched. The fitted parameter
// list is invalidated until the next FitParameters.
func (a *Assembly) reset() {
	subsets := make([]*parameter.Set, len(a.parts))
	for i, p := range a.parts {
		subsets[i] = p.Fitness.ParameterSet()
	}
	root, _ := parameter.NewSet(RootName, nil, subsets...)
	root.SetPrefix("")
	if len(a.opts.symbols) > 0 {
		root.Context = a.opts.symbols
	}
	a.root = root
	a.prepared = false
	a.opts.logger.Debug("assembly: parameter tree rebuilt", "parts", len(a.parts))
}

// Append adds f as the last Part.
func (a *Assembly) Append(f *Fitness, opts ...PartOption) error {
	p, err := newPart(f, opts...)
	if err != nil {
		return err
	}
	a.parts = append(a.parts, p)
	a.reset()

	return nil
}

// AppendModel pairs m with d and appends the resulting Fitness.
func (a *Assembly) AppendModel(m Model, d Data, opts ...PartOption) error {
	f, err := NewFitness(m, d)
	if err != nil {
		return err
	}

	return a.Append(f, opts...)
}

// Insert adds f before index idx; idx == Len() appends.
func (a *Assembly) Insert(idx int, f *Fitness, opts ...PartOption) error {
	if idx < 0 || idx > len(a.parts) {
		return a.indexError(idx)
	}
	p, err := newPart(f, opts...)
	if err != nil {
		return err
	}
	a.parts = append(a.parts, nil)
	copy(a.parts[idx+1:], a.parts[idx:])
	a.parts[idx] = p
	a.reset()

	return nil
}

// Delete removes the Part at idx.
func (a *Assembly) Delete(idx int) error {
	if err := a.checkIndex(idx); err != nil {
		return err
	}
	a.parts = append(a.parts[:idx], a.parts[idx+1:]...)
	a.reset()

	return nil
}

// Replace swaps the Fitness of Part idx, keeping its weight and enable flag.
func (a *Assembly) Replace(idx int, f *Fitness) error {
	if err := a.checkIndex(idx); err != nil {
		return err
	}
	if f == nil {
		return ErrNilFitness
	}
	a.parts[idx].Fitness = f
	a.reset()

	return nil
}

// Len returns the number of Parts.
func (a *Assembly) Len() int { return len(a.parts) }

// Parts returns the Parts in order. The slice is a copy; the Parts are live.
func (a *Assembly) Parts() []*Part {
	out := make([]*Part, len(a.parts))
	copy(out, a.parts)

	return out
}

// Part returns Part idx.
func (a *Assembly) Part(idx int) (*Part, error) {
	if err := a.checkIndex(idx); err != nil {
		return nil, err
	}

	return a.parts[idx], nil
}

// Fitness returns the Fitness of Part idx.
func (a *Assembly) Fitness(idx int) (*Fitness, error) {
	p, err := a.Part(idx)
	if err != nil {
		return nil, err
	}

	return p.Fitness, nil
}

// Lookup returns the first Fitness whose parameter set is named name.
func (a *Assembly) Lookup(name string) (*Fitness, error) {
	for _, p := range a.parts {
		if p.Fitness.Name() == name {
			return p.Fitness, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownPart, name)
}

// Weight returns the weight of Part idx.
func (a *Assembly) Weight(idx int) (float64, error) {
	p, err := a.Part(idx)
	if err != nil {
		return 0, err
	}

	return p.Weight, nil
}

// SetWeight sets and returns the weight of Part idx.
func (a *Assembly) SetWeight(idx int, w float64) (float64, error) {
	p, err := a.Part(idx)
	if err != nil {
		return 0, err
	}
	if err = validateWeight(w); err != nil {
		return p.Weight, err
	}
	p.Weight = w

	return p.Weight, nil
}

// IsFitted returns the enable flag of Part idx.
func (a *Assembly) IsFitted(idx int) (bool, error) {
	p, err := a.Part(idx)
	if err != nil {
		return false, err
	}

	return p.IsFitted, nil
}

// SetIsFitted sets and returns the enable flag of Part idx.
func (a *Assembly) SetIsFitted(idx int, fitted bool) (bool, error) {
	p, err := a.Part(idx)
	if err != nil {
		return false, err
	}
	p.IsFitted = fitted

	return p.IsFitted, nil
}

// ParameterSet returns the root set; its subsets are the Parts' sets in Part order.
// The root set is rebuilt when the Part list changes, so symbols shared by
// all constraints belong in WithSymbols rather than in its Context.
func (a *Assembly) ParameterSet() *parameter.Set { return a.root }

// Residuals returns the weighted residuals of the last completed evaluation.
func (a *Assembly) Residuals() []float64 { return a.residuals }

// Chisq returns the chi-square of the last completed evaluation, without
// restraint penalties.
func (a *Assembly) Chisq() float64 { return a.chisq }

// DegreesOfFreedom returns max(1, len(Residuals) - #fitted parameters).
func (a *Assembly) DegreesOfFreedom() int { return a.dof }

// State returns the outcome of the most recent evaluation.
func (a *Assembly) State() State { return State(a.state.Load()) }

// Evaluations returns the number of Eval calls so far.
func (a *Assembly) Evaluations() int64 { return a.evals.Load() }

// Fitted returns the live fitted parameters in the order of FitParameters.
func (a *Assembly) Fitted() []*parameter.Parameter {
	out := make([]*parameter.Parameter, len(a.fitParams))
	copy(out, a.fitParams)

	return out
}

// FitParameters prepares a fit run and returns a snapshot of the fitted
// parameters sorted by path. The order is the layout of every parameter
// vector passed to Call, FResiduals, Jacobian, Cov and Stderr until the Part
// list changes.
func (a *Assembly) FitParameters() ([]parameter.FitParameter, error) {
	// 1. Paths may be stale after models were renamed
	a.root.SetPrefix("")
	flat := a.root.Flatten()
	for i := 1; i < len(flat); i++ {
		if flat[i].Path() == flat[i-1].Path() {
			return nil, assemblyErrorf(opFitParams, fmt.Errorf("%w: %q", ErrDuplicatePath, flat[i].Path()))
		}
	}
	// 2. Fitted and restrained views, both sorted by path
	a.fitParams = a.root.Fitted()
	a.restraints = a.root.Restrained()
	// 3. Compile the constraints over the whole tree
	ev, err := a.opts.build(flat, a.root.GatherContext())
	if err != nil {
		a.prepared = false
		return nil, assemblyErrorf(opFitParams, err)
	}
	a.fitExpr = ev
	a.prepared = true
	// 4. Detached snapshots for the caller
	out := make([]parameter.FitParameter, len(a.fitParams))
	for i, p := range a.fitParams {
		out[i] = p.Snapshot()
	}
	a.opts.logger.Debug("assembly: fit prepared",
		"fitted", len(a.fitParams), "restrained", len(a.restraints), "parameters", len(flat))

	return out, nil
}

func (a *Assembly) checkIndex(idx int) error {
	if idx < 0 || idx >= len(a.parts) {
		return a.indexError(idx)
	}

	return nil
}

func (a *Assembly) indexError(idx int) error {
	return assemblyErrorf(opPartAccessor, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, idx, len(a.parts)))
}
