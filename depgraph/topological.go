package depgraph

import "fmt"

// topoSorter holds the state of one topological sort traversal.
type topoSorter struct {
	graph *Graph
	state map[string]int // White, Gray or Black per vertex
	stack []string       // current DFS path, for cycle reporting
	order []string       // post-order sequence
}

// TopologicalSort returns all vertices of g ordered so that every edge u->v
// has u before v. Roots are explored in ascending ID order and neighbors in
// ascending order, so the result is deterministic.
// If g is nil, returns ErrGraphNil.
// If a cycle exists, returns a *CycleError (errors.Is ErrCycleDetected).
func TopologicalSort(g *Graph) ([]string, error) {
	// 1. Validate graph pointer
	if g == nil {
		return nil, ErrGraphNil
	}
	// 2. Initialize sorter state
	verts := g.Vertices()
	sorter := &topoSorter{
		graph: g,
		state: make(map[string]int, len(verts)),
		order: make([]string, 0, len(verts)),
	}
	// 3. Drive DFS from every unvisited vertex
	for _, v := range verts {
		if sorter.state[v] == White {
			if err := sorter.visit(v); err != nil {
				return nil, err
			}
		}
	}
	// 4. Reverse post-order to produce topological order
	for i, j := 0, len(sorter.order)-1; i < j; i, j = i+1, j-1 {
		sorter.order[i], sorter.order[j] = sorter.order[j], sorter.order[i]
	}

	return sorter.order, nil
}

// visit performs a DFS from id, marking states and reporting back-edges as cycles.
func (t *topoSorter) visit(id string) error {
	// 1. Back-edge to a Gray vertex closes a cycle
	if t.state[id] == Gray {
		return &CycleError{Cycle: t.cycleFrom(id)}
	}
	// 2. Already fully processed
	if t.state[id] == Black {
		return nil
	}
	// 3. Mark as in-progress
	t.state[id] = Gray
	t.stack = append(t.stack, id)

	// 4. Explore successors
	next, err := t.graph.Neighbors(id)
	if err != nil {
		return fmt.Errorf("depgraph: Neighbors(%q): %w", id, err)
	}
	for _, nb := range next {
		if err = t.visit(nb); err != nil {
			return err
		}
	}

	// 5. Mark as explored and record post-order
	t.stack = t.stack[:len(t.stack)-1]
	t.state[id] = Black
	t.order = append(t.order, id)

	return nil
}

// cycleFrom extracts the closed path from the first occurrence of id on the stack.
func (t *topoSorter) cycleFrom(id string) []string {
	for i, v := range t.stack {
		if v == id {
			cycle := append([]string(nil), t.stack[i:]...)
			return append(cycle, id)
		}
	}

	return []string{id, id}
}
