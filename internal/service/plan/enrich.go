package plan

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"flowplan/internal/domain"
	"flowplan/internal/script"
)

// enrichParallelism bounds concurrent sample fetches and document loads.
const enrichParallelism = 8

// enrichNodes runs the enrichment pass over every node concurrently. The
// returned nodes carry copied configs; callers' configs are never mutated.
// Warnings come back in node declaration order regardless of completion
// order.
func (s *PlanService) enrichNodes(ctx context.Context, nodes []domain.Node) ([]domain.Node, []string) {
	enriched := make([]domain.Node, len(nodes))
	perNode := make([][]string, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichParallelism)
	for i := range nodes {
		g.Go(func() error {
			enriched[i], perNode[i] = s.enrichNode(gctx, nodes[i])
			return nil // enrichment failures degrade to warnings
		})
	}
	_ = g.Wait()

	var warnings []string
	for _, w := range perNode {
		warnings = append(warnings, w...)
	}
	return enriched, warnings
}

// enrichNode fills one node's config from its script, file sample, API
// document, or schedule. Every failure degrades to a warning; the node
// always comes back plannable.
func (s *PlanService) enrichNode(ctx context.Context, node domain.Node) (domain.Node, []string) {
	var warnings []string
	cfg := cloneConfig(node.Config)
	node.Config = cfg

	switch node.Type {
	case domain.NodeTypeTransform:
		if cfg.Script == "" {
			break
		}
		declared, err := script.ExtractSchema(cfg.Script)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("node %q: script parse: %v", node.ID, err))
			break
		}
		if declared != nil && cfg.OutputOverride() == nil {
			cfg.OutputSchema = declared
		}

	case domain.NodeTypeFile:
		if cfg.FilePath == "" || cfg.DetectedSchema != nil {
			break
		}
		detected, err := s.detector.DetectSchema(ctx, cfg.FilePath, cfg.FileFormat)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("node %q: sample %s: %v", node.ID, cfg.FilePath, err))
			break
		}
		cfg.DetectedSchema = detected

	case domain.NodeTypeAPI:
		if cfg.OpenAPIDocument == "" || cfg.OpenAPIOperation == "" {
			break
		}
		derived, err := s.deriver.DeriveFromFile(ctx, cfg.OpenAPIDocument, cfg.OpenAPIOperation)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("node %q: openapi: %v", node.ID, err))
			break
		}
		if !cfg.UseOpenAPISchema {
			warnings = append(warnings, fmt.Sprintf(
				"node %q: openapi operation %q derives %d field(s); set use_openapi_schema to apply them",
				node.ID, cfg.OpenAPIOperation, len(derived)))
			break
		}
		if cfg.OutputOverride() == nil {
			cfg.OutputSchema = derived
		}

	case domain.NodeTypeTrigger:
		if cfg.Schedule == "" {
			break
		}
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			warnings = append(warnings, fmt.Sprintf("node %q: invalid schedule %q: %v", node.ID, cfg.Schedule, err))
		}
	}

	return node, warnings
}

// cloneConfig returns a mutable copy of a node config. Schemas and mapping
// sets stay shared; enrichment only assigns whole fields, never mutates
// their contents.
func cloneConfig(cfg *domain.NodeConfig) *domain.NodeConfig {
	if cfg == nil {
		return &domain.NodeConfig{}
	}
	c := *cfg
	return &c
}
