// SPDX-License-Identifier: MIT
package assembly

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Jacobian returns d(residual_i)/d(p_k) at pvec as an n_residuals x n_params
// matrix, by central differences.
//
// Implementation:
//   - Stage 1: Write all of pvec into the fitted parameters.
//   - Stage 2: For each parameter k pick the step h_k:
//     (hi-lo)*step for a finite range, pvec[k]*step when either bound is
//     infinite, and step itself when that product is exactly zero.
//   - Stage 3: Evaluate at p_k+h_k and p_k-h_k, restore p_k, and store
//     (r+ - r-)/(2 h_k) as column k.
//
// Inputs:
//   - pvec: one value per fitted parameter, in FitParameters order.
//   - step: relative step; values <= 0 select the Assembly default
//     (DefaultJacobianStep unless WithJacobianStep was given).
//
// Returns:
//   - *mat.Dense with rows = residuals and columns = fitted parameters.
//
// Errors:
//   - ErrNotPrepared, ErrParameterCount for bad calls.
//   - ErrAborted / ErrInfeasible when a probe returns +Inf.
//   - ErrEmptyJacobian for zero parameters or zero residuals.
//   - ErrResidualLength when probes disagree on the residual count.
//
// Complexity:
//   - 2*n_params full evaluations; nothing is cached between calls.
//
// Notes:
//   - On return the fitted parameters hold pvec again, while Residuals and
//     Chisq describe the last probe (p_last - h_last).
func (a *Assembly) Jacobian(pvec []float64, step float64) (*mat.Dense, error) {
	// Stage 1: load the base point
	if err := a.load(pvec); err != nil {
		return nil, assemblyErrorf(opJacobian, err)
	}
	n := len(pvec)
	if n == 0 {
		return nil, assemblyErrorf(opJacobian, ErrEmptyJacobian)
	}
	if !(step > 0) {
		step = a.opts.step
	}

	// Stage 2+3: one column per parameter
	var J *mat.Dense
	for k, v := range pvec {
		h := a.stepSize(k, v, step)
		p := a.fitParams[k]

		p.Value = v + h
		err := a.evalStrict()
		if err != nil {
			p.Value = v
			return nil, assemblyErrorf(opJacobian, err)
		}
		plus := make([]float64, len(a.residuals))
		copy(plus, a.residuals)

		p.Value = v - h
		err = a.evalStrict()
		p.Value = v
		if err != nil {
			return nil, assemblyErrorf(opJacobian, err)
		}
		minus := a.residuals

		if J == nil {
			if len(plus) == 0 {
				return nil, assemblyErrorf(opJacobian, ErrEmptyJacobian)
			}
			J = mat.NewDense(len(plus), n, nil)
		}
		rows, _ := J.Dims()
		if len(plus) != rows || len(minus) != rows {
			return nil, assemblyErrorf(opJacobian,
				fmt.Errorf("%w: %d, %d and %d", ErrResidualLength, rows, len(plus), len(minus)))
		}
		for i := 0; i < rows; i++ {
			J.Set(i, k, (plus[i]-minus[i])/(2*h))
		}
	}

	return J, nil
}

// stepSize returns the finite-difference step of fitted parameter k at value v.
func (a *Assembly) stepSize(k int, v, step float64) float64 {
	r := a.fitParams[k].Range()
	h := (r.Hi - r.Lo) * step
	if math.IsInf(h, 0) || math.IsNaN(h) {
		h = v * step
	}
	if h == 0 {
		h = step
	}

	return h
}

// Cov returns the Gauss-Newton covariance inv(J^T J) at pvec, computed from
// the thin SVD J = U S V^T as V diag(1/S^2) V^T.
//
// No regularization or rank truncation is applied: a singular value near zero
// produces a huge (or infinite) variance for the parameters it involves.
func (a *Assembly) Cov(pvec []float64) (*mat.Dense, error) {
	J, err := a.Jacobian(pvec, 0)
	if err != nil {
		return nil, err
	}

	var svd mat.SVD
	if ok := svd.Factorize(J, mat.SVDThin); !ok {
		return nil, assemblyErrorf(opCov, ErrSVDFailed)
	}
	s := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	// scale column j of V by 1/s_j^2, then multiply by V^T
	n, r := v.Dims()
	scaled := mat.NewDense(n, r, nil)
	for j := 0; j < r; j++ {
		inv := 1 / (s[j] * s[j])
		for i := 0; i < n; i++ {
			scaled.Set(i, j, v.At(i, j)*inv)
		}
	}
	cov := mat.NewDense(n, n, nil)
	cov.Mul(scaled, v.T())

	return cov, nil
}

// Stderr returns sqrt(diag(Cov(pvec))). Negative diagonal entries from
// numerical noise give NaN.
func (a *Assembly) Stderr(pvec []float64) ([]float64, error) {
	cov, err := a.Cov(pvec)
	if err != nil {
		return nil, err
	}
	n, _ := cov.Dims()
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sqrt(cov.At(i, i))
	}

	return out, nil
}
