package api

import (
	"encoding/json"
	"net/http"

	"flowplan/internal/domain"
	"flowplan/internal/mapping"
)

// validateMappingsRequest pairs a node's output schema with its mapping set.
type validateMappingsRequest struct {
	OutputSchema domain.Schema      `json:"outputSchema"`
	Mappings     *domain.MappingSet `json:"mappings"`
}

// handleValidateMappings checks a mapping set for structural completeness
// against an output schema. POST /v1/mappings/validate.
func (h *Handler) handleValidateMappings(w http.ResponseWriter, r *http.Request) {
	var req validateMappingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	report := mapping.Validate(req.OutputSchema, req.Mappings)
	writeJSON(w, http.StatusOK, report)
}

// resolveMappingRequest evaluates one mapping against an upstream schema.
type resolveMappingRequest struct {
	FieldName string         `json:"fieldName"`
	Mapping   domain.Mapping `json:"mapping"`
	Upstream  domain.Schema  `json:"upstream"`
}

// handleResolveMapping evaluates a single mapping into the output field it
// would produce. POST /v1/mappings/resolve.
func (h *Handler) handleResolveMapping(w http.ResponseWriter, r *http.Request) {
	var req resolveMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.FieldName == "" {
		writeBadRequest(w, "fieldName is required")
		return
	}
	if err := req.Mapping.Validate(); err != nil {
		writeError(w, err)
		return
	}

	res := mapping.ResolveOutput(req.FieldName, req.Mapping, req.Upstream)
	writeJSON(w, http.StatusOK, res)
}
