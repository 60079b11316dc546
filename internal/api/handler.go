// Package api provides the JSON HTTP handlers for the planning service.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"flowplan/internal/domain"
)

// planService defines the planning operations used by the API handler.
type planService interface {
	Plan(ctx context.Context, graph domain.Graph) (*domain.PlanResult, error)
}

// schemaDetector defines the sample-based detection used by the API handler.
type schemaDetector interface {
	DetectSchema(ctx context.Context, uri, format string) (domain.Schema, error)
}

// Handler serves the planning endpoints.
type Handler struct {
	plans    planService
	detector schemaDetector
	logger   *slog.Logger
}

// NewHandler creates a Handler with its service dependencies.
func NewHandler(plans planService, detector schemaDetector, logger *slog.Logger) *Handler {
	return &Handler{plans: plans, detector: detector, logger: logger}
}

// Routes returns the router with all planning endpoints mounted: the
// versioned JSON API under /v1 plus the public health and documentation
// endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.handleHealthz)
	r.Get("/openapi.json", h.handleOpenAPIJSON)
	r.Get("/docs", h.handleDocs)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/plans", h.handleCreatePlan)
		r.Post("/schemas/infer", h.handleInferSchema)
		r.Post("/schemas/detect", h.handleDetectSchema)
		r.Post("/mappings/validate", h.handleValidateMappings)
		r.Post("/mappings/resolve", h.handleResolveMapping)
		r.Get("/node-types", h.handleNodeTypes)
	})

	return r
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
