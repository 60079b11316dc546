package domain

import "time"

// NodeSchemas is one planned node's computed shapes: the merged schema
// flowing in and the schema the node emits.
type NodeSchemas struct {
	Input    Schema   `json:"input" yaml:"input"`
	Output   Schema   `json:"output" yaml:"output"`
	NodeType NodeType `json:"nodeType" yaml:"node_type"`
}

// SchemaMap holds the propagation result, one entry per planned node id.
// Created fresh per invocation; never shared between calls.
type SchemaMap map[string]NodeSchemas

// MappingReport is the validation interface result consumed by the editor
// to render error and warning banners.
type MappingReport struct {
	IsValid          bool     `json:"isValid" yaml:"is_valid"`
	Errors           []string `json:"errors" yaml:"errors"`
	Warnings         []string `json:"warnings" yaml:"warnings"`
	UnmappedRequired []string `json:"unmappedRequired" yaml:"unmapped_required"`
	UnmappedOptional []string `json:"unmappedOptional" yaml:"unmapped_optional"`
	Summary          string   `json:"summary" yaml:"summary"`
}

// PlanResult wraps one planning pass: the schema map plus per-node mapping
// reports and the diagnostics gathered while enriching node configs.
type PlanResult struct {
	PlanID      string                   `json:"planId" yaml:"plan_id"`
	GeneratedAt time.Time                `json:"generatedAt" yaml:"generated_at"`
	Schemas     SchemaMap                `json:"schemas" yaml:"schemas"`
	Reports     map[string]MappingReport `json:"reports,omitempty" yaml:"reports,omitempty"`
	CycleNodes  []string                 `json:"cycleNodes,omitempty" yaml:"cycle_nodes,omitempty"`
	Warnings    []string                 `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HasErrors reports whether any node's mapping report carries errors.
func (r *PlanResult) HasErrors() bool {
	for _, rep := range r.Reports {
		if !rep.IsValid {
			return true
		}
	}
	return false
}
