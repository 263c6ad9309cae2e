// SPDX-License-Identifier: MIT
package fit_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvfit/assembly"
	"github.com/katalvlaran/lvfit/data"
	"github.com/katalvlaran/lvfit/fit"
	"github.com/katalvlaran/lvfit/model"
	"github.com/katalvlaran/lvfit/parameter"
)

// sample returns noiseless data for fn on n points of [0, 1].
func sample(t *testing.T, n int, fn func(float64) float64) *data.Data1D {
	t.Helper()
	x := floats.Span(make([]float64, n), 0, 1)
	y := make([]float64, n)
	for i, xi := range x {
		y[i] = fn(xi)
	}
	d, err := data.NewData1D(x, y, nil, nil)
	require.NoError(t, err)

	return d
}

// coupledExp builds M1 = a*exp(c*x) and M2 = a*exp(c*x) with M2.c = 2*M1.c,
// started away from the generating values M1(1, 1.5), M2(2.5, 3).
func coupledExp(t *testing.T) (*assembly.Assembly, *model.Exp, *model.Exp) {
	t.Helper()
	m1, err := model.NewExp("M1")
	require.NoError(t, err)
	require.NoError(t, m1.Set(map[string]any{"a": []float64{0.5, 3}, "c": []float64{1, 3}}))
	require.NoError(t, m1.SetParam("a", 1.3))
	require.NoError(t, m1.SetParam("c", 1.2))
	m2, err := model.NewExp("M2")
	require.NoError(t, err)
	require.NoError(t, m2.Set(map[string]any{"a": []float64{1, 3}, "c": "2*M1.c"}))
	require.NoError(t, m2.SetParam("a", 2))

	a, err := assembly.New(nil)
	require.NoError(t, err)
	require.NoError(t, a.AppendModel(m1, sample(t, 11, func(x float64) float64 { return math.Exp(1.5 * x) })))
	require.NoError(t, a.AppendModel(m2, sample(t, 12, func(x float64) float64 { return 2.5 * math.Exp(3*x) })))

	return a, m1, m2
}

// TestRun_CoupledExponentials verifies that the simplex recovers the generating
// parameters of two models tied by a constraint.
func TestRun_CoupledExponentials(t *testing.T) {
	a, m1, m2 := coupledExp(t)

	res, err := fit.Run(context.Background(), a)
	require.NoError(t, err)

	require.Len(t, res.Parameters, 3)
	byName := map[string]float64{}
	for _, p := range res.Parameters {
		byName[p.Name] = p.Value
	}
	assert.InDelta(t, 1.0, byName["M1.a"], 1e-3)
	assert.InDelta(t, 1.5, byName["M1.c"], 1e-3)
	assert.InDelta(t, 2.5, byName["M2.a"], 1e-3)

	require.Len(t, res.Computed, 1)
	assert.Equal(t, "M2.c", res.Computed[0].Name)
	assert.InDelta(t, 3.0, res.Computed[0].Value, 2e-3)

	// the assembly is left at the fitted point
	c1, err := m1.Get("c")
	require.NoError(t, err)
	c2, err := m2.Get("c")
	require.NoError(t, err)
	assert.InDelta(t, 2*c1, c2, 1e-12)
	assert.Equal(t, res.Chisq, a.Chisq())
	assert.Less(t, res.Chisq, 1e-4)

	assert.Equal(t, 20, res.DegreesOfFreedom)
	assert.Equal(t, fit.DefaultMethod, res.Method)
	assert.Positive(t, res.Evaluations)
	require.Len(t, res.Stderr, 3)
	for _, s := range res.Stderr {
		assert.False(t, math.IsNaN(s))
	}
	require.NotNil(t, res.Cov)
}

// TestRun_GradientMethods verifies the gradient-based minimizers on an
// unbounded straight-line fit.
func TestRun_GradientMethods(t *testing.T) {
	for _, method := range []string{"bfgs", "lbfgs"} {
		t.Run(method, func(t *testing.T) {
			m, err := model.NewLinear("line")
			require.NoError(t, err)
			require.NoError(t, m.Set(map[string]any{"a": parameter.Unbounded(), "b": parameter.Unbounded()}))
			a, err := assembly.New(nil)
			require.NoError(t, err)
			require.NoError(t, a.AppendModel(m, sample(t, 9, func(x float64) float64 { return 3*x - 0.5 })))

			res, err := fit.Run(context.Background(), a, fit.WithMethod(method))
			require.NoError(t, err)
			assert.InDelta(t, 3.0, res.Parameters[0].Value, 1e-5)
			assert.InDelta(t, -0.5, res.Parameters[1].Value, 1e-5)
			assert.Equal(t, method, res.Method)
		})
	}
}

// TestRun_BoundedOptimum verifies that the gradient minimizers converge to
// an optimum sitting on a range bound (M1.a = 1 in [1, 3]).
func TestRun_BoundedOptimum(t *testing.T) {
	for _, method := range []string{"bfgs", "lbfgs"} {
		t.Run(method, func(t *testing.T) {
			a, m1, _ := coupledExp(t)
			require.NoError(t, m1.Set(map[string]any{"a": []float64{1, 3}}))

			res, err := fit.Run(context.Background(), a, fit.WithMethod(method))
			require.NoError(t, err)
			assert.True(t, res.Converged, res.Status)

			byName := map[string]float64{}
			for _, p := range res.Parameters {
				byName[p.Name] = p.Value
			}
			assert.InDelta(t, 1.0, byName["M1.a"], 1e-3)
			assert.GreaterOrEqual(t, byName["M1.a"], 1.0)
			assert.InDelta(t, 1.5, byName["M1.c"], 1e-3)
			assert.InDelta(t, 2.5, byName["M2.a"], 1e-3)
			assert.Less(t, res.Chisq, 1e-4)
		})
	}
}

// TestRun_Restrained verifies that a Gaussian restraint pulls the fit and is
// reported in Cost but not in Chisq.
func TestRun_Restrained(t *testing.T) {
	m, err := model.NewLinear("line")
	require.NoError(t, err)
	require.NoError(t, m.Set(map[string]any{"a": parameter.Unbounded()}))
	p, err := m.Param("a")
	require.NoError(t, err)
	p.SetRestraint(parameter.Gaussian{Mean: 1, Sigma: 0.1})
	a, err := assembly.New(nil)
	require.NoError(t, err)
	require.NoError(t, a.AppendModel(m, sample(t, 5, func(x float64) float64 { return 2 * x })))

	res, err := fit.Run(context.Background(), a, fit.WithMethod("bfgs"))
	require.NoError(t, err)
	// minimum of 1.875*(2-a)^2 + 50*(a-1)^2
	assert.InDelta(t, 107.5/103.75, res.Parameters[0].Value, 1e-4)
	assert.Greater(t, res.Cost, res.Chisq)
}

// TestRun_MultiStart verifies that extra starts never worsen the result.
func TestRun_MultiStart(t *testing.T) {
	a1, _, _ := coupledExp(t)
	single, err := fit.Run(context.Background(), a1, fit.WithMaxEvaluations(60))
	require.NoError(t, err)

	a2, _, _ := coupledExp(t)
	multi, err := fit.Run(context.Background(), a2, fit.WithMaxEvaluations(60), fit.WithStarts(4), fit.WithSeed(7))
	require.NoError(t, err)

	assert.Equal(t, 4, multi.Starts)
	assert.LessOrEqual(t, multi.Cost, single.Cost)
}

// TestRun_Errors verifies the failure modes reported before minimizing.
func TestRun_Errors(t *testing.T) {
	a, _, _ := coupledExp(t)
	_, err := fit.Run(context.Background(), a, fit.WithMethod("simulated-annealing"))
	assert.ErrorIs(t, err, fit.ErrUnknownMethod)

	m, err := model.NewLinear("fixed")
	require.NoError(t, err)
	b, err := assembly.New(nil)
	require.NoError(t, err)
	require.NoError(t, b.AppendModel(m, sample(t, 3, func(x float64) float64 { return x })))
	_, err = fit.Run(context.Background(), b)
	assert.ErrorIs(t, err, fit.ErrNoParameters)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _, _ := coupledExp(t)
	_, err = fit.Run(ctx, c)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestMethods verifies the method listing.
func TestMethods(t *testing.T) {
	assert.Equal(t, []string{"bfgs", "gradient-descent", "lbfgs", "nelder-mead"}, fit.Methods())
}
