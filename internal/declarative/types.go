// Package declarative loads persisted flow definitions: strict YAML
// documents describing the node/edge graph the planner consumes.
package declarative

import "flowplan/internal/domain"

// SupportedAPIVersion is the current API version for flow documents.
const SupportedAPIVersion = "flowplan/v1"

// KindNameFlow is the kind string for flow documents.
const KindNameFlow = "Flow"

// FlowDoc is the YAML envelope of a flow definition file.
type FlowDoc struct {
	APIVersion string     `yaml:"apiVersion"`
	Kind       string     `yaml:"kind"`
	Metadata   ObjectMeta `yaml:"metadata"`
	Spec       FlowSpec   `yaml:"spec"`
}

// ObjectMeta holds the flow's identifying metadata.
type ObjectMeta struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// FlowSpec is the graph payload of a flow document.
type FlowSpec struct {
	Nodes []domain.Node `yaml:"nodes"`
	Edges []domain.Edge `yaml:"edges,omitempty"`
}

// Flow is a loaded flow definition: document metadata plus the graph.
type Flow struct {
	Name        string
	Description string
	// SourcePath is the file the flow was loaded from, empty for in-memory
	// documents.
	SourcePath string
	Graph      domain.Graph
}
