package api

import (
	"encoding/json"
	"net/http"

	"flowplan/internal/declarative"
	"flowplan/internal/domain"
	"flowplan/internal/service/plan"
)

// planRequest accepts either an inline node/edge graph or a persisted flow
// document. The two forms are mutually exclusive.
type planRequest struct {
	Nodes []domain.Node `json:"nodes"`
	Edges []domain.Edge `json:"edges"`
	Flow  string        `json:"flow"`
}

// handleCreatePlan computes schemas, mapping reports, and diagnostics for a
// graph. POST /v1/plans.
func (h *Handler) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	var graph domain.Graph
	switch {
	case req.Flow != "" && len(req.Nodes) > 0:
		writeBadRequest(w, "flow and nodes are mutually exclusive")
		return
	case req.Flow != "":
		flow, err := declarative.Parse([]byte(req.Flow))
		if err != nil {
			writeError(w, domain.ErrValidation("flow: %v", err))
			return
		}
		graph = flow.Graph
	default:
		graph = domain.Graph{Nodes: req.Nodes, Edges: req.Edges}
	}

	result, err := h.plans.Plan(r.Context(), graph)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleNodeTypes lists every node type with its default output schema.
// GET /v1/node-types.
func (h *Handler) handleNodeTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"nodeTypes": plan.NodeTypeCatalog()})
}
