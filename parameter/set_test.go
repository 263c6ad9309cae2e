package parameter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfit/parameter"
)

// modelSet builds a model-like set with parameters a and c.
func modelSet(t *testing.T, name string) *parameter.Set {
	t.Helper()
	s, err := parameter.NewSet(name, []*parameter.Parameter{
		parameter.New("c", 1),
		parameter.New("a", 2),
	})
	require.NoError(t, err)

	return s
}

// TestSet_Duplicate verifies duplicate and empty names are rejected.
func TestSet_Duplicate(t *testing.T) {
	_, err := parameter.NewSet("m", []*parameter.Parameter{parameter.New("a", 0), parameter.New("a", 1)})
	assert.ErrorIs(t, err, parameter.ErrDuplicateName)

	_, err = parameter.NewSet("", nil)
	assert.ErrorIs(t, err, parameter.ErrEmptyName)

	s := modelSet(t, "m")
	assert.ErrorIs(t, s.Append(parameter.New("x.y", 0)), parameter.ErrBadSetting)
}

// TestSet_SetPrefixQualifiesSharedNames checks that two models sharing a
// local name receive distinct paths under a root, and the root name is omitted.
func TestSet_SetPrefixQualifiesSharedNames(t *testing.T) {
	m1, m2 := modelSet(t, "M1"), modelSet(t, "M2")
	before := m1.Parameters()[0].Value

	root, err := parameter.NewSet("root", nil, m1, m2)
	require.NoError(t, err)
	root.SetPrefix("")

	var paths []string
	for _, p := range root.Flatten() {
		paths = append(paths, p.Path())
	}
	assert.Equal(t, []string{"M1.a", "M1.c", "M2.a", "M2.c"}, paths)
	// prefixing changes paths only
	assert.Equal(t, before, m1.Parameters()[0].Value)

	// idempotent
	root.SetPrefix("")
	assert.Equal(t, "M2.c", m2.Parameters()[0].Path())
}

// TestSet_Get resolves local names and dotted paths.
func TestSet_Get(t *testing.T) {
	m1 := modelSet(t, "M1")
	root, err := parameter.NewSet("root", nil, m1)
	require.NoError(t, err)

	p, err := root.Get("M1.a")
	require.NoError(t, err)
	assert.Equal(t, "a", p.Name())

	_, err = root.Get("M1.zz")
	assert.ErrorIs(t, err, parameter.ErrUnknownParameter)
	_, err = root.Get("M9.a")
	assert.ErrorIs(t, err, parameter.ErrUnknownParameter)
	_, err = m1.Lookup("b")
	assert.ErrorIs(t, err, parameter.ErrUnknownParameter)
}

// TestSet_Views verifies fitted, computed and restrained views are path sorted.
func TestSet_Views(t *testing.T) {
	m1, m2 := modelSet(t, "M1"), modelSet(t, "M2")
	root, err := parameter.NewSet("root", nil, m2, m1)
	require.NoError(t, err)
	root.SetPrefix("")

	for _, path := range []string{"M2.a", "M1.c", "M1.a"} {
		p, err := root.Get(path)
		require.NoError(t, err)
		require.NoError(t, p.SetRange(0, 5))
	}
	c2, err := root.Get("M2.c")
	require.NoError(t, err)
	require.NoError(t, c2.Set("2*M1.c"))
	c2.SetRestraint(parameter.Gaussian{Mean: 3, Sigma: 1})

	names := func(ps []*parameter.Parameter) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Path())
		}
		return out
	}
	assert.Equal(t, []string{"M1.a", "M1.c", "M2.a"}, names(root.Fitted()))
	assert.Equal(t, []string{"M2.c"}, names(root.Computed()))
	assert.Equal(t, []string{"M2.c"}, names(root.Restrained()))
	assert.Len(t, root.Flatten(), 4)
}

// TestSet_GatherContext checks that symbols nearer the root override deeper ones.
func TestSet_GatherContext(t *testing.T) {
	m1 := modelSet(t, "M1")
	m1.Context = map[string]any{"k": 1.0, "q": 2.0}
	root, err := parameter.NewSet("root", nil, m1)
	require.NoError(t, err)
	root.Context = map[string]any{"k": 5.0}

	ctx := root.GatherContext()
	assert.Equal(t, 5.0, ctx["k"])
	assert.Equal(t, 2.0, ctx["q"])
}
