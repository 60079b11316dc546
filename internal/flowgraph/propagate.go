package flowgraph

import "flowplan/internal/domain"

// Propagate performs one planning pass over the graph: every node that can be
// topologically ordered is computed exactly once, producers before consumers,
// recording its merged input schema and resolved output schema. Nodes Order
// reports as cycle members are absent from the result. All traversal state is
// scoped to the call, so concurrent passes never interfere.
func Propagate(nodes []domain.Node, edges []domain.Edge) domain.SchemaMap {
	levels, _ := Order(nodes, edges)

	byID := make(map[string]domain.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	result := make(domain.SchemaMap, len(nodes))
	for _, level := range levels {
		for _, id := range level {
			node := byID[id]
			input := Merge(producerOutputs(id, edges, result))
			result[id] = domain.NodeSchemas{
				Input:    input,
				Output:   ResolveOutput(node.Type, input, node.Config),
				NodeType: node.Type,
			}
		}
	}
	return result
}

// producerOutputs gathers the computed output schema of every producer
// feeding the node, in edge declaration order. A producer with no computed
// schema (a dangling edge) contributes an empty schema to the merge, never a
// failure.
func producerOutputs(target string, edges []domain.Edge, result domain.SchemaMap) []domain.Schema {
	var outputs []domain.Schema
	for _, e := range edges {
		if e.Target != target {
			continue
		}
		if computed, ok := result[e.Source]; ok {
			outputs = append(outputs, computed.Output)
		} else {
			outputs = append(outputs, domain.Schema{})
		}
	}
	return outputs
}
