// Package plan orchestrates one planning pass: enriching node configs from
// scripts, samples, and API documents, then propagating schemas through the
// graph and validating mapping sets.
package plan

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"flowplan/internal/domain"
	"flowplan/internal/flowgraph"
	"flowplan/internal/mapping"
)

// SchemaDetector samples a file source and infers its record schema.
type SchemaDetector interface {
	DetectSchema(ctx context.Context, uri, format string) (domain.Schema, error)
}

// SchemaDeriver converts an OpenAPI operation's 200 response into a schema.
type SchemaDeriver interface {
	DeriveFromFile(ctx context.Context, path, operationID string) (domain.Schema, error)
}

// PlanService computes schema plans over caller-supplied graphs.
type PlanService struct {
	detector SchemaDetector
	deriver  SchemaDeriver
	logger   *slog.Logger
}

// NewPlanService creates a new PlanService.
func NewPlanService(detector SchemaDetector, deriver SchemaDeriver, logger *slog.Logger) *PlanService {
	return &PlanService{
		detector: detector,
		deriver:  deriver,
		logger:   logger,
	}
}

// Plan runs one planning pass: enrich node configs, order and propagate
// schemas, and validate every configured mapping set against its node's
// output. Malformed configurations degrade to warnings and best-effort
// schemas; the only hard failures are missing or duplicate node ids.
func (s *PlanService) Plan(ctx context.Context, graph domain.Graph) (*domain.PlanResult, error) {
	start := time.Now()
	if err := graph.CheckIDs(); err != nil {
		return nil, err
	}

	nodes, warnings := s.enrichNodes(ctx, graph.Nodes)

	_, cycleNodes := flowgraph.Order(nodes, graph.Edges)
	schemas := flowgraph.Propagate(nodes, graph.Edges)

	reports := make(map[string]domain.MappingReport)
	for _, n := range nodes {
		if !n.Config.HasMappings() {
			continue
		}
		reports[n.ID] = mapping.Validate(schemas[n.ID].Output, n.Config.Mappings)
	}

	result := &domain.PlanResult{
		PlanID:      uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Schemas:     schemas,
		Reports:     reports,
		CycleNodes:  cycleNodes,
		Warnings:    warnings,
	}

	s.logger.Debug("plan computed",
		"plan_id", result.PlanID,
		"nodes", len(graph.Nodes),
		"cycle_nodes", len(cycleNodes),
		"warnings", len(warnings),
		"duration", time.Since(start),
	)
	return result, nil
}

// NodeTypeInfo describes one node type for the editor's palette: its name
// and the output shape an unconfigured node of that type resolves to.
type NodeTypeInfo struct {
	Type          domain.NodeType `json:"type" yaml:"type"`
	DefaultOutput domain.Schema   `json:"defaultOutput" yaml:"default_output"`
}

// NodeTypeCatalog lists every known node type with its default output schema.
func NodeTypeCatalog() []NodeTypeInfo {
	types := domain.NodeTypes()
	infos := make([]NodeTypeInfo, 0, len(types))
	for _, t := range types {
		infos = append(infos, NodeTypeInfo{
			Type:          t,
			DefaultOutput: flowgraph.ResolveOutput(t, domain.Schema{}, nil),
		})
	}
	return infos
}
