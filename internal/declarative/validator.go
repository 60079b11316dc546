package declarative

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"flowplan/internal/domain"
)

// ValidationError represents a single validation problem.
type ValidationError struct {
	Path    string // e.g. "flows/orders.yaml" or "node[src-1]"
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Validate checks a loaded flow for structural correctness: named metadata,
// unique node ids, edge endpoints that exist, well-formed mappings and schema
// overrides, and parseable trigger schedules. It returns all problems found
// (does not stop at first error).
func Validate(flow *Flow) []ValidationError {
	var errs []ValidationError

	docPath := flow.SourcePath
	if docPath == "" {
		docPath = "flow"
	}

	if flow.Name == "" {
		errs = append(errs, ValidationError{Path: docPath, Message: "missing metadata.name"})
	}

	nodeIDs := make(map[string]bool, len(flow.Graph.Nodes))
	for _, n := range flow.Graph.Nodes {
		if n.ID == "" {
			errs = append(errs, ValidationError{Path: docPath, Message: "node with empty id"})
			continue
		}
		if nodeIDs[n.ID] {
			errs = append(errs, ValidationError{Path: nodePath(n.ID), Message: "duplicate node id"})
			continue
		}
		nodeIDs[n.ID] = true
	}

	for i, e := range flow.Graph.Edges {
		if !nodeIDs[e.Source] {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("edge[%d]", i),
				Message: fmt.Sprintf("source references unknown node %q", e.Source),
			})
		}
		if !nodeIDs[e.Target] {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("edge[%d]", i),
				Message: fmt.Sprintf("target references unknown node %q", e.Target),
			})
		}
	}

	for _, n := range flow.Graph.Nodes {
		if n.Config == nil {
			continue
		}
		if err := n.Config.OutputOverride().Validate(); err != nil {
			errs = append(errs, ValidationError{
				Path:    nodePath(n.ID),
				Message: fmt.Sprintf("output schema: %v", err),
			})
		}
		for _, name := range n.Config.Mappings.Names() {
			m, _ := n.Config.Mappings.Get(name)
			if err := m.Validate(); err != nil {
				errs = append(errs, ValidationError{
					Path:    nodePath(n.ID),
					Message: fmt.Sprintf("mapping %q: %v", name, err),
				})
			}
		}
		if n.Type == domain.NodeTypeTrigger && n.Config.Schedule != "" {
			if _, err := cron.ParseStandard(n.Config.Schedule); err != nil {
				errs = append(errs, ValidationError{
					Path:    nodePath(n.ID),
					Message: fmt.Sprintf("invalid schedule %q: %v", n.Config.Schedule, err),
				})
			}
		}
	}

	return errs
}

func nodePath(id string) string {
	return fmt.Sprintf("node[%s]", id)
}
