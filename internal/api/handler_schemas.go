package api

import (
	"encoding/json"
	"net/http"

	"flowplan/internal/domain"
	"flowplan/internal/infer"
)

// inferRequest carries sample data for schema inference. Data may be an
// array of records or a single record object.
type inferRequest struct {
	Data       any `json:"data"`
	SampleSize int `json:"sampleSize"`
}

// handleInferSchema infers a schema from sample records.
// POST /v1/schemas/infer.
func (h *Handler) handleInferSchema(w http.ResponseWriter, r *http.Request) {
	var req inferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.Data == nil {
		writeBadRequest(w, "data is required")
		return
	}

	schema := infer.SchemaFromData(req.Data, req.SampleSize)
	writeJSON(w, http.StatusOK, map[string]any{"schema": schema})
}

// detectRequest names a file to sample. Format overrides the extension-based
// guess when set ("json" or "csv").
type detectRequest struct {
	URI    string `json:"uri"`
	Format string `json:"format"`
}

// handleDetectSchema samples a file through the scheme-selected fetcher and
// infers its schema. POST /v1/schemas/detect.
func (h *Handler) handleDetectSchema(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.URI == "" {
		writeBadRequest(w, "uri is required")
		return
	}

	schema, err := h.detector.DetectSchema(r.Context(), req.URI, req.Format)
	if err != nil {
		writeError(w, domain.ErrValidation("detect %s: %v", req.URI, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"uri": req.URI, "schema": schema})
}
