package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfit/model"
	"github.com/katalvlaran/lvfit/parameter"
)

// abortable is a child model that records Abort calls.
type abortable struct {
	*model.Linear
	aborted int
}

func (a *abortable) Abort() { a.aborted++ }

// TestSum_EvalAndPaths checks summation and nested parameter paths.
func TestSum_EvalAndPaths(t *testing.T) {
	l1, err := model.NewLinear("l1")
	require.NoError(t, err)
	l2, err := model.NewLinear("l2")
	require.NoError(t, err)
	s, err := model.NewSum("S", l1, l2)
	require.NoError(t, err)

	require.NoError(t, s.Set(map[string]any{"l1.a": 1.0, "l2.a": 2.0, "l2.b": 1.0}))
	y, err := s.Eval([]float64{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, y)

	root, err := parameter.NewSet("root", nil, s.ParameterSet())
	require.NoError(t, err)
	root.SetPrefix("")
	p, err := root.Get("S.l2.b")
	require.NoError(t, err)
	assert.Equal(t, "S.l2.b", p.Path())

	assert.ErrorIs(t, s.Set(map[string]any{"a": 1.0}), parameter.ErrUnknownParameter)
	assert.ErrorIs(t, s.Set(map[string]any{"l3.a": 1.0}), parameter.ErrUnknownParameter)
	assert.Len(t, s.Children(), 2)
}

// TestSum_AbortForwards verifies Abort reaches abortable children only.
func TestSum_AbortForwards(t *testing.T) {
	l1, err := model.NewLinear("l1")
	require.NoError(t, err)
	l2, err := model.NewLinear("l2")
	require.NoError(t, err)
	child := &abortable{Linear: l1}
	s, err := model.NewSum("S", child, l2)
	require.NoError(t, err)

	s.Abort()
	assert.Equal(t, 1, child.aborted)
}
