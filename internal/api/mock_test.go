package api

import (
	"context"

	"flowplan/internal/domain"
)

// === Mocks ===

type mockPlanService struct {
	planFn func(ctx context.Context, graph domain.Graph) (*domain.PlanResult, error)
}

func (m *mockPlanService) Plan(ctx context.Context, graph domain.Graph) (*domain.PlanResult, error) {
	if m.planFn == nil {
		panic("mockPlanService.Plan called but not configured")
	}
	return m.planFn(ctx, graph)
}

type mockSchemaDetector struct {
	detectFn func(ctx context.Context, uri, format string) (domain.Schema, error)
}

func (m *mockSchemaDetector) DetectSchema(ctx context.Context, uri, format string) (domain.Schema, error) {
	if m.detectFn == nil {
		panic("mockSchemaDetector.DetectSchema called but not configured")
	}
	return m.detectFn(ctx, uri, format)
}
