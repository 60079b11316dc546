// Package flowgraph computes record schemas across a pipeline graph: merging
// producer schemas into a node's input, resolving each node's output, and
// propagating both through the graph in dependency order.
package flowgraph

import "flowplan/internal/domain"

// Merge unifies the output schemas of several producers feeding one consumer.
// The first occurrence of a field name establishes the field; a later
// occurrence with a different type widens the merged type to string, and
// nullability is OR-ed. Field order is first-seen order across the inputs.
func Merge(schemas []domain.Schema) domain.Schema {
	if len(schemas) == 0 {
		return domain.Schema{}
	}
	if len(schemas) == 1 {
		return schemas[0]
	}

	merged := domain.Schema{}
	index := make(map[string]int)

	for _, schema := range schemas {
		for _, field := range schema {
			i, seen := index[field.Name]
			if !seen {
				index[field.Name] = len(merged)
				merged = append(merged, field)
				continue
			}
			if merged[i].Type != field.Type {
				merged[i].Type = domain.FieldTypeString
			}
			merged[i].Nullable = merged[i].Nullable || field.Nullable
		}
	}
	return merged
}
