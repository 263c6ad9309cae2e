package assembly_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvfit/assembly"
	"github.com/katalvlaran/lvfit/data"
	"github.com/katalvlaran/lvfit/model"
)

// linspace returns n evenly spaced points on [lo, hi].
func linspace(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

// expData samples a*exp(c*x) without noise.
func expData(t *testing.T, x []float64, a, c float64) *data.Data1D {
	t.Helper()
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = a * math.Exp(c*xi)
	}
	d, err := data.NewData1D(x, y, nil, nil)
	require.NoError(t, err)

	return d
}

// coupled builds the two-model exponential assembly:
//
//	M1 = a*exp(c*x), a in [1,3], c in [1,3]
//	M2 = a*exp(c*x), a in [1,3], c = 2*M1.c
//
// with noiseless data from M1(a=1, c=1.5) on 11 points and M2(a=2.5, c=3)
// on 12 points.
func coupled(t *testing.T) (*assembly.Assembly, *model.Exp, *model.Exp) {
	t.Helper()
	m1, err := model.NewExp("M1")
	require.NoError(t, err)
	require.NoError(t, m1.Set(map[string]any{"a": []float64{1, 3}, "c": []float64{1, 3}}))
	m2, err := model.NewExp("M2")
	require.NoError(t, err)
	require.NoError(t, m2.Set(map[string]any{"a": []float64{1, 3}, "c": "2*M1.c"}))

	asm, err := assembly.New(nil)
	require.NoError(t, err)
	require.NoError(t, asm.AppendModel(m1, expData(t, linspace(0, 1, 11), 1, 1.5)))
	require.NoError(t, asm.AppendModel(m2, expData(t, linspace(0, 1, 12), 2.5, 3)))

	return asm, m1, m2
}

// linearPart returns a line model a*x+b with fitted a and data y = ya*x + yb.
func linearPart(t *testing.T, name string, x []float64, ya, yb float64, dy []float64) (*model.Linear, *data.Data1D) {
	t.Helper()
	m, err := model.NewLinear(name)
	require.NoError(t, err)
	require.NoError(t, m.Set(map[string]any{"a": []float64{0, 4}}))
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = ya*xi + yb
	}
	d, err := data.NewData1D(x, y, nil, dy)
	require.NoError(t, err)

	return m, d
}

// value reads a model parameter or fails.
func value(t *testing.T, m interface{ Get(string) (float64, error) }, name string) float64 {
	t.Helper()
	v, err := m.Get(name)
	require.NoError(t, err)

	return v
}
