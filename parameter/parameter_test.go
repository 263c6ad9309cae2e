package parameter_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfit/parameter"
)

// TestParameter_NewIsFixed verifies a fresh parameter is fixed and unbounded.
func TestParameter_NewIsFixed(t *testing.T) {
	p := parameter.New("scale", 2)
	assert.True(t, p.IsFixed())
	assert.False(t, p.IsFitted())
	assert.False(t, p.IsComputed())
	assert.False(t, p.IsRestrained())
	assert.Equal(t, "scale", p.Path())
	assert.True(t, math.IsInf(p.Range().Lo, -1))
	assert.True(t, math.IsInf(p.Range().Hi, 1))
}

// TestParameter_SetDispatch checks each accepted setting type lands in the right status.
func TestParameter_SetDispatch(t *testing.T) {
	cases := []struct {
		name   string
		in     any
		status parameter.Status
	}{
		{"float", 1.5, parameter.Fixed},
		{"int", 3, parameter.Fixed},
		{"range", parameter.Range{Lo: 0, Hi: 1}, parameter.Fitted},
		{"array", [2]float64{0, 1}, parameter.Fitted},
		{"slice", []float64{0, 1}, parameter.Fitted},
		{"expression", "2*M1.c", parameter.Computed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := parameter.New("c", 0)
			require.NoError(t, p.Set(tc.in))
			assert.Equal(t, tc.status, p.Status())
		})
	}
}

// TestParameter_SetRejects covers unsupported types, bad ranges and empty expressions.
func TestParameter_SetRejects(t *testing.T) {
	p := parameter.New("c", 0)
	assert.ErrorIs(t, p.Set(true), parameter.ErrBadSetting)
	assert.ErrorIs(t, p.Set([]float64{1}), parameter.ErrBadSetting)
	assert.ErrorIs(t, p.Set("  "), parameter.ErrBadSetting)
	assert.ErrorIs(t, p.Set([2]float64{3, 1}), parameter.ErrBadRange)
	assert.ErrorIs(t, p.SetRange(math.NaN(), 1), parameter.ErrBadRange)
	// failed settings leave the parameter untouched
	assert.True(t, p.IsFixed())
}

// TestParameter_StatusIsExclusive verifies switching status clears the previous one.
func TestParameter_StatusIsExclusive(t *testing.T) {
	p := parameter.New("c", 1)
	require.NoError(t, p.SetExpression("2*a"))
	require.NoError(t, p.SetRange(0, 4))
	assert.True(t, p.IsFitted())
	assert.Empty(t, p.Expression())

	p.SetValue(2)
	assert.True(t, p.IsFixed())
	assert.Equal(t, 2.0, p.Value)
	// range survives fixing so it can be refitted later
	assert.Equal(t, parameter.Range{Lo: 0, Hi: 4}, p.Range())
}

// TestParameter_Restraint verifies restraints combine with fitted status.
func TestParameter_Restraint(t *testing.T) {
	p := parameter.New("c", 1)
	require.NoError(t, p.SetRange(0, 4))
	assert.Zero(t, p.Likelihood(3))

	p.SetRestraint(parameter.Gaussian{Mean: 1, Sigma: 0.5})
	assert.True(t, p.IsRestrained())
	assert.True(t, p.IsFitted())
	assert.InDelta(t, 2.0, p.Likelihood(2), 1e-12)
}

// TestSoftBounds checks the penalty is flat inside and quadratic outside.
func TestSoftBounds(t *testing.T) {
	r := parameter.SoftBounds{Lo: 0, Hi: 1, Sigma: 0.1}
	assert.Zero(t, r.Likelihood(0.5))
	assert.Zero(t, r.Likelihood(1))
	assert.InDelta(t, 0.5, r.Likelihood(1.1), 1e-9)
	assert.InDelta(t, 2.0, r.Likelihood(-0.2), 1e-9)
}

// TestParameter_SnapshotIsDetached verifies mutating a snapshot never reaches the parameter.
func TestParameter_SnapshotIsDetached(t *testing.T) {
	p := parameter.New("a", 1)
	require.NoError(t, p.SetRange(0, 2))
	s := p.Snapshot()
	s.Value = 99
	s.Range.Hi = 100
	assert.Equal(t, 1.0, p.Value)
	assert.Equal(t, 2.0, p.Range().Hi)
}

// TestRange_Helpers covers Contains, Clip, IsFinite and Width.
func TestRange_Helpers(t *testing.T) {
	r := parameter.Range{Lo: -1, Hi: 3}
	assert.True(t, r.IsFinite())
	assert.Equal(t, 4.0, r.Width())
	assert.True(t, r.Contains(3))
	assert.False(t, r.Contains(3.5))
	assert.Equal(t, -1.0, r.Clip(-7))
	assert.False(t, parameter.Unbounded().IsFinite())
	assert.Equal(t, "[-1, 3]", r.String())
}
