// SPDX-License-Identifier: MIT
// Package fit drives an assembly.Assembly with a gonum/optimize minimizer and
// reports the fitted values with their uncertainties.
//
// Run:
//
//  1. FitParameters fixes the parameter vector layout.
//  2. Each start point (the current values, then random points inside the
//     finite ranges) is minimized with the selected method. For nelder-mead
//     points outside a parameter range cost +Inf. Gradient methods minimize
//     over unbounded coordinates mapped onto the ranges, so an optimum on a
//     bound is reached at a finite coordinate.
//  3. The best point is written back with SetResult, re-evaluated, and the
//     covariance is estimated from the Jacobian at that point.
//
// A best start that ends in optimize.Failure still yields a Result, with
// Converged false, and Run reports ErrNotConverged alongside it.
//
// Cancelling the context aborts the running evaluation through
// Assembly.Abort and stops the minimizer; Run then returns the context error.
//
// Methods:
//
//	nelder-mead       derivative-free simplex (default)
//	bfgs, lbfgs       quasi-Newton with gradient 2 J^T r
//	gradient-descent  steepest descent with the same gradient
//
// When parameters carry restraints the gradient is taken numerically from
// the full cost (chi-square plus penalties) with gonum/diff/fd.
package fit
