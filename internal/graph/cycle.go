package graph

// Cycle detection for a proposed new edge.
//
// The search keeps a visited set scoped to the current path, not a global
// one. A shared visited set would still detect that a cycle exists, but
// when the same node is reachable over several non-cyclic routes it would
// return a truncated or wrong path for display. The traversal uses an
// explicit stack of (node, path) frames so memory is bounded by path
// depth times path count, not by call-stack depth.

// FindCycle reports the dependency path that would close into a loop if
// "from" started depending on "to". It walks forward dependsOn edges from
// "to"; if "from" becomes reachable, the full path is returned, starting
// and ending at "from" (e.g. [C, A, B, C] when C -> A is proposed over
// existing A -> B -> C). An empty result means no cycle.
//
// The result is advisory: callers report it and record the edge anyway.
// Self-reference (from == to) is a hard failure handled by the caller,
// not a soft cycle, and is not reported here.
func (g *Graph) FindCycle(from, to string) []string {
	if from == to {
		return nil
	}

	type frame struct {
		node string
		path []string
	}

	stack := []frame{{node: to, path: []string{from, to}}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, dep := range g.DependsOn(f.node) {
			if dep == from {
				cycle := make([]string, len(f.path)+1)
				copy(cycle, f.path)
				cycle[len(f.path)] = from
				return cycle
			}
			if onPath(f.path, dep) {
				// Pre-existing cycle elsewhere in the graph — tolerated;
				// only loops through the new edge are this query's concern.
				continue
			}
			next := make([]string, len(f.path)+1)
			copy(next, f.path)
			next[len(f.path)] = dep
			stack = append(stack, frame{node: dep, path: next})
		}
	}

	return nil
}

func onPath(path []string, id string) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}
	return false
}
