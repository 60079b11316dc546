package flowgraph

import "flowplan/internal/domain"

// Order computes a topological ordering of the graph using Kahn's algorithm.
// Returns levels of node ids where every producer sits in an earlier level
// than its consumers. Nodes on a cycle, and nodes whose every path in passes
// through one, cannot be ordered; they come back in cycleNodes (declaration
// order) instead of failing the call. Edges with an endpoint missing from the
// node list are ignored.
func Order(nodes []domain.Node, edges []domain.Edge) (levels [][]string, cycleNodes []string) {
	if len(nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(nodes))
	for _, n := range nodes {
		inDegree[n.ID] = 0
	}

	dependents := make(map[string][]string)
	for _, e := range edges {
		if _, ok := inDegree[e.Source]; !ok {
			continue
		}
		if _, ok := inDegree[e.Target]; !ok {
			continue
		}
		dependents[e.Source] = append(dependents[e.Source], e.Target)
		inDegree[e.Target]++
	}

	// Seed with the starting nodes in declaration order so repeated calls
	// over the same graph produce identical levels.
	var queue []string
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	processed := make(map[string]struct{}, len(nodes))
	for len(queue) > 0 {
		level := make([]string, len(queue))
		copy(level, queue)
		levels = append(levels, level)

		var next []string
		for _, id := range queue {
			processed[id] = struct{}{}
			for _, dep := range dependents[id] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		queue = next
	}

	if len(processed) != len(nodes) {
		for _, n := range nodes {
			if _, ok := processed[n.ID]; !ok {
				cycleNodes = append(cycleNodes, n.ID)
			}
		}
	}
	return levels, cycleNodes
}
