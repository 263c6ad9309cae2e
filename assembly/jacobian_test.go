package assembly_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfit/assembly"
	"github.com/katalvlaran/lvfit/model"
)

// lineAssembly fits y = a*x (b fixed at 0) against noiseless data at a=2.
func lineAssembly(t *testing.T, x, dy []float64, opts ...assembly.Option) (*assembly.Assembly, *model.Linear) {
	t.Helper()
	m, d := linearPart(t, "L", x, 2, 0, dy)
	asm, err := assembly.New(nil, opts...)
	require.NoError(t, err)
	require.NoError(t, asm.AppendModel(m, d))
	_, err = asm.FitParameters()
	require.NoError(t, err)

	return asm, m
}

// TestJacobian_LinearShapeAndSign checks J is n_residuals x 1 with entries -x/dy.
func TestJacobian_LinearShapeAndSign(t *testing.T) {
	x := []float64{0.5, 1, 2, 3}
	dy := []float64{0.5, 1, 2, 0.25}
	asm, _ := lineAssembly(t, x, dy)

	J, err := asm.Jacobian([]float64{2}, 0)
	require.NoError(t, err)
	r, c := J.Dims()
	assert.Equal(t, len(x), r)
	assert.Equal(t, 1, c)
	for i := range x {
		assert.InDelta(t, -x[i]/dy[i], J.At(i, 0), 1e-6)
		assert.Less(t, J.At(i, 0), 0.0)
	}
	// base point restored
	assert.Equal(t, 2.0, asm.Fitted()[0].Value)
}

// TestJacobian_UnboundedRange uses a value-relative step, falling back to the
// raw step at zero.
func TestJacobian_UnboundedRange(t *testing.T) {
	x := []float64{1, 2}
	asm, m := lineAssembly(t, x, nil, assembly.WithJacobianStep(1e-6))
	a, err := m.Param("a")
	require.NoError(t, err)
	require.NoError(t, a.SetRange(math.Inf(-1), math.Inf(1)))
	_, err = asm.FitParameters()
	require.NoError(t, err)

	for _, p := range []float64{2, 0} {
		J, err := asm.Jacobian([]float64{p}, 0)
		require.NoError(t, err)
		assert.InDelta(t, -1.0, J.At(0, 0), 1e-6)
		assert.InDelta(t, -2.0, J.At(1, 0), 1e-6)
	}
}

// TestJacobian_TwoParameters checks column order follows FitParameters.
func TestJacobian_TwoParameters(t *testing.T) {
	x := []float64{1, 2, 3}
	asm, m := lineAssembly(t, x, nil)
	require.NoError(t, m.Set(map[string]any{"b": []float64{-1, 1}}))
	fps, err := asm.FitParameters()
	require.NoError(t, err)
	require.Equal(t, "L.a", fps[0].Name)
	require.Equal(t, "L.b", fps[1].Name)

	J, err := asm.Jacobian([]float64{2, 0}, 0)
	require.NoError(t, err)
	for i, xi := range x {
		assert.InDelta(t, -xi, J.At(i, 0), 1e-6)
		assert.InDelta(t, -1.0, J.At(i, 1), 1e-6)
	}
}

// TestJacobian_Empty reports no fitted parameters.
func TestJacobian_Empty(t *testing.T) {
	asm, m := lineAssembly(t, []float64{1}, nil)
	a, err := m.Param("a")
	require.NoError(t, err)
	a.Fix()
	_, err = asm.FitParameters()
	require.NoError(t, err)
	_, err = asm.Jacobian(nil, 0)
	assert.ErrorIs(t, err, assembly.ErrEmptyJacobian)
}

// TestCovStderr_Linear compares with the closed form 1/sum(x^2/dy^2).
func TestCovStderr_Linear(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	dy := []float64{0.5, 0.5, 1, 1}
	asm, _ := lineAssembly(t, x, dy)

	var s float64
	for i := range x {
		s += x[i] * x[i] / (dy[i] * dy[i])
	}
	cov, err := asm.Cov([]float64{2})
	require.NoError(t, err)
	assert.InEpsilon(t, 1/s, cov.At(0, 0), 1e-5)

	se, err := asm.Stderr([]float64{2})
	require.NoError(t, err)
	require.Len(t, se, 1)
	assert.InEpsilon(t, math.Sqrt(1/s), se[0], 1e-5)
}

// TestCov_TwoParametersSymmetric checks the covariance of a straight-line fit
// against the normal-equation inverse.
func TestCov_TwoParametersSymmetric(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	asm, m := lineAssembly(t, x, nil)
	require.NoError(t, m.Set(map[string]any{"b": []float64{-1, 1}}))
	_, err := asm.FitParameters()
	require.NoError(t, err)

	cov, err := asm.Cov([]float64{2, 0})
	require.NoError(t, err)
	// J^T J = [[sum x^2, sum x], [sum x, n]] = [[55, 15], [15, 5]], det = 50
	assert.InEpsilon(t, 5.0/50, cov.At(0, 0), 1e-5)
	assert.InEpsilon(t, 55.0/50, cov.At(1, 1), 1e-5)
	assert.InEpsilon(t, -15.0/50, cov.At(0, 1), 1e-5)
	assert.InDelta(t, cov.At(0, 1), cov.At(1, 0), 1e-9)
}
