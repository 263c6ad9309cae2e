package depgraph

import (
	"errors"
	"strings"
	"sync"
)

// Visitation states used by the depth-first traversals.
const (
	White = iota // not visited yet
	Gray         // on the recursion stack
	Black        // fully explored
)

var (
	// ErrGraphNil is returned when a nil *Graph is passed to TopologicalSort.
	ErrGraphNil = errors.New("depgraph: graph is nil")

	// ErrEmptyVertexID indicates an empty vertex ID.
	ErrEmptyVertexID = errors.New("depgraph: vertex ID is empty")

	// ErrVertexNotFound indicates a lookup of a vertex that was never added.
	ErrVertexNotFound = errors.New("depgraph: vertex not found")

	// ErrCycleDetected indicates that the graph contains a directed cycle.
	ErrCycleDetected = errors.New("depgraph: cycle detected")
)

// CycleError reports the first cycle met by TopologicalSort as a closed path
// [v0, v1, ..., v0].
type CycleError struct {
	Cycle []string
}

// Error implements error.
func (e *CycleError) Error() string {
	return ErrCycleDetected.Error() + ": " + strings.Join(e.Cycle, " -> ")
}

// Unwrap lets errors.Is match ErrCycleDetected.
func (e *CycleError) Unwrap() error { return ErrCycleDetected }

// Graph is a directed graph keyed by vertex ID.
//
// All methods are safe for concurrent use; mu guards both maps.
type Graph struct {
	mu  sync.RWMutex
	adj map[string]map[string]struct{} // from -> set of to
}

// NewGraph returns an empty directed graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[string]map[string]struct{})}
}
