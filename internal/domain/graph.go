package domain

// NodeType classifies a pipeline node. Unrecognized values are carried
// through and resolved with pass-through semantics.
type NodeType string

// Node type constants.
const (
	NodeTypeFile      NodeType = "file"
	NodeTypeTransform NodeType = "transform"
	NodeTypeAnalytics NodeType = "analytics"
	NodeTypeStorage   NodeType = "storage"
	NodeTypeAPI       NodeType = "api"
	NodeTypePlugin    NodeType = "plugin"
	NodeTypeVisual    NodeType = "visual"
	NodeTypeTrigger   NodeType = "trigger"
)

// NodeTypes lists every known node type in declaration order.
func NodeTypes() []NodeType {
	return []NodeType{
		NodeTypeFile, NodeTypeTransform, NodeTypeAnalytics, NodeTypeStorage,
		NodeTypeAPI, NodeTypePlugin, NodeTypeVisual, NodeTypeTrigger,
	}
}

// Known reports whether t is one of the recognized node types.
func (t NodeType) Known() bool {
	switch t {
	case NodeTypeFile, NodeTypeTransform, NodeTypeAnalytics, NodeTypeStorage,
		NodeTypeAPI, NodeTypePlugin, NodeTypeVisual, NodeTypeTrigger:
		return true
	}
	return false
}

// NodeConfig carries a node's mapping set, schema overrides, and the
// node-type-specific settings the enrichment pass reads.
type NodeConfig struct {
	Mappings     *MappingSet `json:"mappings,omitempty" yaml:"mappings,omitempty"`
	OutputSchema Schema      `json:"output_schema,omitempty" yaml:"output_schema,omitempty"`
	// SchemaOutput is the accepted legacy alias for output_schema.
	SchemaOutput Schema `json:"schema_output,omitempty" yaml:"schema_output,omitempty"`

	// file source
	FilePath       string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	FileFormat     string `json:"file_format,omitempty" yaml:"file_format,omitempty"`
	DetectedSchema Schema `json:"detected_schema,omitempty" yaml:"detected_schema,omitempty"`

	// transform
	Script string `json:"script,omitempty" yaml:"script,omitempty"`

	// api
	OpenAPIDocument  string `json:"openapi_document,omitempty" yaml:"openapi_document,omitempty"`
	OpenAPIOperation string `json:"openapi_operation,omitempty" yaml:"openapi_operation,omitempty"`
	UseOpenAPISchema bool   `json:"use_openapi_schema,omitempty" yaml:"use_openapi_schema,omitempty"`

	// plugin
	Function string `json:"function,omitempty" yaml:"function,omitempty"`

	// visual preview
	PreviewKind string `json:"preview_kind,omitempty" yaml:"preview_kind,omitempty"`

	// trigger
	Schedule string `json:"schedule,omitempty" yaml:"schedule,omitempty"`
}

// OutputOverride returns the explicit output schema override, honoring the
// canonical key before the legacy alias. Nil when no override is set.
func (c *NodeConfig) OutputOverride() Schema {
	if c == nil {
		return nil
	}
	if c.OutputSchema != nil {
		return c.OutputSchema
	}
	return c.SchemaOutput
}

// HasMappings reports whether the config carries a non-empty mapping set.
func (c *NodeConfig) HasMappings() bool {
	return c != nil && c.Mappings.Len() > 0
}

// Node is one pipeline stage: an id unique within the graph, a type, and a
// caller-owned configuration the engine reads but never mutates.
type Node struct {
	ID     string      `json:"id" yaml:"id"`
	Type   NodeType    `json:"type" yaml:"type"`
	Config *NodeConfig `json:"config,omitempty" yaml:"config,omitempty"`
}

// Edge is a directed connection between two nodes. Fan-in and fan-out are
// both allowed; nothing at the data level forbids cycles.
type Edge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Graph is the caller-supplied node/edge description the engine plans over.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// NodeByID returns the node with the given id.
func (g Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// CheckIDs verifies every node has a non-empty id unique within the graph.
// This is the one structural requirement planning cannot degrade around.
func (g Graph) CheckIDs() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return ErrValidation("node with empty id")
		}
		if _, ok := seen[n.ID]; ok {
			return ErrConflict("duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

// Validate applies the strict structural checks used when loading persisted
// flow definitions: unique ids, edge endpoints that exist, well-formed
// mappings and schema overrides. Interactive callers use CheckIDs instead
// and rely on degrade-and-report planning.
func (g Graph) Validate() error {
	if err := g.CheckIDs(); err != nil {
		return err
	}
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	for _, e := range g.Edges {
		if _, ok := ids[e.Source]; !ok {
			return ErrValidation("edge references unknown source node %q", e.Source)
		}
		if _, ok := ids[e.Target]; !ok {
			return ErrValidation("edge references unknown target node %q", e.Target)
		}
	}
	for _, n := range g.Nodes {
		if n.Config == nil {
			continue
		}
		if err := n.Config.OutputOverride().Validate(); err != nil {
			return ErrValidation("node %q output schema: %v", n.ID, err)
		}
		if n.Config.Mappings != nil {
			for _, name := range n.Config.Mappings.Names() {
				m, _ := n.Config.Mappings.Get(name)
				if err := m.Validate(); err != nil {
					return ErrValidation("node %q mapping %q: %v", n.ID, name, err)
				}
			}
		}
	}
	return nil
}
