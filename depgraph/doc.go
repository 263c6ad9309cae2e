// Package depgraph provides a small, thread-safe directed graph of string
// vertex IDs together with a depth-first topological sort.
//
// What:
//
//   - Graph: vertices plus directed edges "from -> to", meaning "from must be
//     processed before to". Vertices() and Neighbors() return sorted IDs, so
//     every traversal is deterministic.
//   - TopologicalSort: orders all vertices so that for every edge u->v, u comes
//     before v. A cycle yields a *CycleError that matches ErrCycleDetected via
//     errors.Is and carries the offending closed path.
//
// The constraint-expression compiler builds one vertex per parameter path and
// one edge per "expression references symbol" pair, then evaluates computed
// parameters in the returned order.
//
// Complexity:
//
//   - AddVertex / AddEdge: O(1) amortized
//   - Vertices / Neighbors: O(k log k) for k returned IDs (sorted copies)
//   - TopologicalSort: O(V log V + E log E), Memory O(V)
//
// Errors:
//
//	ErrGraphNil         - nil *Graph passed to TopologicalSort.
//	ErrEmptyVertexID    - vertex ID is the empty string.
//	ErrVertexNotFound   - Neighbors on an unknown vertex.
//	ErrCycleDetected    - the graph is not a DAG (wrapped by *CycleError).
package depgraph
