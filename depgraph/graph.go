package depgraph

import "sort"

// AddVertex inserts id if absent. Adding an existing vertex is a no-op.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure(id)

	return nil
}

// AddEdge inserts the directed edge from->to, creating missing vertices.
// Parallel edges collapse into one; self-loops are kept and form a cycle.
func (g *Graph) AddEdge(from, to string) error {
	if from == "" || to == "" {
		return ErrEmptyVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure(from)
	g.ensure(to)
	g.adj[from][to] = struct{}{}

	return nil
}

// ensure adds id under the write lock held by the caller.
func (g *Graph) ensure(id string) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[string]struct{})
	}
}

// HasVertex reports whether id exists.
func (g *Graph) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adj[id]

	return ok
}

// HasEdge reports whether from->to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adj[from][to]

	return ok
}

// Vertices returns all vertex IDs in ascending order.
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, 0, len(g.adj))
	for id := range g.adj {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Neighbors returns the successors of id in ascending order.
func (g *Graph) Neighbors(id string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out, ok := g.adj[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	ids := make([]string, 0, len(out))
	for to := range out {
		ids = append(ids, to)
	}
	sort.Strings(ids)

	return ids, nil
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adj)
}

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, out := range g.adj {
		n += len(out)
	}

	return n
}
