package plan

import (
	"context"

	"flowplan/internal/domain"
)

// === Schema Detector Mock ===

type mockDetector struct {
	detectFn func(ctx context.Context, uri, format string) (domain.Schema, error)
}

func (m *mockDetector) DetectSchema(ctx context.Context, uri, format string) (domain.Schema, error) {
	if m.detectFn != nil {
		return m.detectFn(ctx, uri, format)
	}
	panic("unexpected call to mockDetector.DetectSchema")
}

// === Schema Deriver Mock ===

type mockDeriver struct {
	deriveFn func(ctx context.Context, path, operationID string) (domain.Schema, error)
}

func (m *mockDeriver) DeriveFromFile(ctx context.Context, path, operationID string) (domain.Schema, error) {
	if m.deriveFn != nil {
		return m.deriveFn(ctx, path, operationID)
	}
	panic("unexpected call to mockDeriver.DeriveFromFile")
}
