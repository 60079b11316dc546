package flowgraph

import (
	"flowplan/internal/domain"
	"flowplan/internal/mapping"
)

// ResolveOutput computes a node's output schema from its type, its already
// merged input schema, and its configuration. Priority: an explicit schema
// override wins, then a configured mapping set, then the node type's default
// shape. The result is always a fresh, non-nil schema.
func ResolveOutput(nodeType domain.NodeType, input domain.Schema, cfg *domain.NodeConfig) domain.Schema {
	if override := cfg.OutputOverride(); override != nil {
		return override.Clone()
	}

	if cfg.HasMappings() {
		return mappedSchema(cfg.Mappings, input)
	}

	switch nodeType {
	case domain.NodeTypeFile:
		if cfg != nil && cfg.DetectedSchema != nil {
			return cfg.DetectedSchema.Clone()
		}
		return filePlaceholderSchema()
	case domain.NodeTypeTransform:
		if cfg != nil && cfg.DetectedSchema != nil {
			return cfg.DetectedSchema.Clone()
		}
		return passthrough(input, true)
	case domain.NodeTypeAPI:
		return apiEnvelopeSchema()
	case domain.NodeTypeAnalytics:
		return analyticsEnvelopeSchema()
	case domain.NodeTypeStorage:
		return storageConfirmationSchema()
	case domain.NodeTypePlugin:
		var function string
		if cfg != nil {
			function = cfg.Function
		}
		return pluginSchema(function)
	case domain.NodeTypeVisual:
		var kind string
		if cfg != nil {
			kind = cfg.PreviewKind
		}
		return visualSchema(kind)
	case domain.NodeTypeTrigger:
		return triggerContextSchema()
	default:
		return passthrough(input, false)
	}
}

// mappedSchema builds one output field per mapping entry, in mapping-set
// order. Incomplete mappings still emit their intended field; validation
// flags them separately.
func mappedSchema(ms *domain.MappingSet, input domain.Schema) domain.Schema {
	out := make(domain.Schema, 0, ms.Len())
	for _, name := range ms.Names() {
		m, _ := ms.Get(name)
		res := mapping.ResolveOutput(name, m, input)
		out = append(out, res.Field)
	}
	return out
}
