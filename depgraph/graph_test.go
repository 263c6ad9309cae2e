package depgraph_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfit/depgraph"
)

// TestGraph_Basics covers vertex/edge insertion, lookups and counts.
func TestGraph_Basics(t *testing.T) {
	g := depgraph.NewGraph()
	assert.ErrorIs(t, g.AddVertex(""), depgraph.ErrEmptyVertexID)
	assert.ErrorIs(t, g.AddEdge("a", ""), depgraph.ErrEmptyVertexID)

	require.NoError(t, g.AddEdge("b", "a"))
	require.NoError(t, g.AddEdge("b", "a")) // parallel edge collapses
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddVertex("b"))

	assert.Equal(t, []string{"a", "b", "c"}, g.Vertices())
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.True(t, g.HasEdge("b", "c"))
	assert.False(t, g.HasEdge("c", "b"))
	assert.True(t, g.HasVertex("a"))

	nb, err := g.Neighbors("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, nb)

	_, err = g.Neighbors("zz")
	assert.ErrorIs(t, err, depgraph.ErrVertexNotFound)
}

// TestGraph_ConcurrentAdd verifies concurrent insertion under the race detector.
func TestGraph_ConcurrentAdd(t *testing.T) {
	g := depgraph.NewGraph()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = g.AddEdge("root", string(rune('a'+i)))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 9, g.VertexCount())
	assert.Equal(t, 8, g.EdgeCount())
}
