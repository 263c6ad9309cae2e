// SPDX-License-Identifier: MIT
package assembly

import (
	"errors"
	"fmt"
)

var (
	// ErrNilModel indicates a Fitness built without a model.
	ErrNilModel = errors.New("assembly: model is nil")

	// ErrNilData indicates a Fitness built without data.
	ErrNilData = errors.New("assembly: data is nil")

	// ErrNilFitness indicates a nil *Fitness passed to the Part list.
	ErrNilFitness = errors.New("assembly: fitness is nil")

	// ErrParameterCount indicates a parameter vector whose length differs
	// from the fitted parameter list.
	ErrParameterCount = errors.New("assembly: unexpected number of parameters")

	// ErrNotPrepared indicates an evaluation without a current FitParameters call.
	ErrNotPrepared = errors.New("assembly: FitParameters has not been called")

	// ErrIndexOutOfRange indicates a Part index outside the Part list.
	ErrIndexOutOfRange = errors.New("assembly: part index out of range")

	// ErrInvalidWeight indicates a negative or NaN Part weight.
	ErrInvalidWeight = errors.New("assembly: weight must be a non-negative number")

	// ErrDuplicatePath indicates two parameters sharing a path in the root set.
	ErrDuplicatePath = errors.New("assembly: duplicate parameter path")

	// ErrUnknownPart indicates a Lookup by a name no Part carries.
	ErrUnknownPart = errors.New("assembly: unknown part")

	// ErrNoDerivatives indicates a model without analytic derivatives.
	ErrNoDerivatives = errors.New("assembly: model has no analytic derivatives")

	// ErrAborted indicates an evaluation stopped by Abort.
	ErrAborted = errors.New("assembly: evaluation aborted")

	// ErrInfeasible indicates an evaluation rejected by the feasibility check.
	ErrInfeasible = errors.New("assembly: infeasible parameters")

	// ErrEmptyJacobian indicates a Jacobian with no rows or no columns.
	ErrEmptyJacobian = errors.New("assembly: empty jacobian")

	// ErrResidualLength indicates residual vectors of different lengths
	// between evaluations of one Jacobian.
	ErrResidualLength = errors.New("assembly: residual count changed between evaluations")

	// ErrSVDFailed indicates the Jacobian could not be factorized.
	ErrSVDFailed = errors.New("assembly: SVD factorization failed")
)

// Operation tags used in wrapped errors.
const (
	opCall         = "Call"
	opEval         = "Eval"
	opFitParams    = "FitParameters"
	opFResiduals   = "FResiduals"
	opJacobian     = "Jacobian"
	opCov          = "Cov"
	opSetResult    = "SetResult"
	opPartAccessor = "Part"
)

// assemblyErrorf prefixes err with the operation tag: "Jacobian: <err>".
func assemblyErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
