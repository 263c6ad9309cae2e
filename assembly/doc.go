// SPDX-License-Identifier: MIT
// Package assembly combines several model/data pairs into one constrained
// least-squares cost function.
//
// What:
//
//   - Fitness binds one Model to one Data object and produces residuals.
//   - Part wraps a Fitness with a weight and an enable flag and caches the
//     residuals, chi-square and degrees of freedom of its last evaluation.
//   - Assembly owns the ordered Parts and the merged root parameter.Set, and
//     exposes the optimizer-facing operations: FitParameters, Call (the cost
//     function), Eval, FResiduals, Jacobian, Cov, Stderr, SetResult,
//     AllResults and Abort.
//
// Evaluation:
//
//	Call(pvec) -> write pvec into the fitted parameters (sorted by path)
//	           -> Eval: refresh computed parameters, check feasibility,
//	              gather weighted residuals of every enabled Part
//	           -> chisq + restraint penalties
//
// Parameters are shared registers: the Assembly, the expression evaluator
// and the models all hold the same *parameter.Parameter. Writing a value
// through any of them is visible to the others on the next evaluation.
//
// Cancellation:
//
// Abort may be called from any goroutine. It raises a flag checked before
// each Part and forwards to the model currently being evaluated when that
// model implements Aborter. Eval returns +Inf for both an aborted and an
// infeasible evaluation; State tells the two apart.
//
// Concurrency:
//
// Apart from Abort, an Assembly must be driven by one goroutine at a time.
//
// Errors:
//
//	ErrParameterCount  - parameter vector length differs from FitParameters.
//	ErrNotPrepared     - evaluation before FitParameters, or after a Part change.
//	ErrIndexOutOfRange - Part index outside [0, Len()).
//	ErrInvalidWeight   - negative or NaN Part weight.
//	ErrDuplicatePath   - two Parts expose the same parameter path.
//	ErrNoDerivatives   - ResidualsDeriv on a model without analytic derivatives.
//	ErrAborted         - Jacobian or FResiduals interrupted by Abort.
//	ErrInfeasible      - Jacobian or FResiduals probed an infeasible point.
//	ErrEmptyJacobian   - no fitted parameters or no residuals.
//	ErrSVDFailed       - the Jacobian could not be factorized.
package assembly
