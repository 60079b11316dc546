// Package ui is the browser workbench: a server-rendered editor for flow
// documents with per-node schema and mapping-report views.
package ui

import (
	"log/slog"
	"net/http"

	"flowplan/internal/service/plan"

	gomponents "maragu.dev/gomponents"
)

type Handler struct {
	Plans  *plan.PlanService
	Logger *slog.Logger
}

func NewHandler(plans *plan.PlanService, logger *slog.Logger) *Handler {
	return &Handler{
		Plans:  plans,
		Logger: logger,
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
