package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowplan/internal/domain"
)

func TestCreatePlan_InlineGraph(t *testing.T) {
	var gotGraph domain.Graph
	plans := &mockPlanService{
		planFn: func(_ context.Context, graph domain.Graph) (*domain.PlanResult, error) {
			gotGraph = graph
			return &domain.PlanResult{
				PlanID: "plan-1",
				Schemas: domain.SchemaMap{
					"src": {Output: domain.Schema{{Name: "id", Type: domain.FieldTypeNumber}}, NodeType: domain.NodeTypeFile},
				},
			}, nil
		},
	}

	body := `{"nodes":[{"id":"src","type":"file"},{"id":"sink","type":"storage"}],"edges":[{"source":"src","target":"sink"}]}`
	rec := doRequest(t, newTestHandler(plans, nil), http.MethodPost, "/v1/plans", body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, gotGraph.Nodes, 2)
	assert.Equal(t, "src", gotGraph.Nodes[0].ID)
	require.Len(t, gotGraph.Edges, 1)

	var result domain.PlanResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "plan-1", result.PlanID)
	assert.Contains(t, result.Schemas, "src")
}

func TestCreatePlan_FlowDocument(t *testing.T) {
	var gotGraph domain.Graph
	plans := &mockPlanService{
		planFn: func(_ context.Context, graph domain.Graph) (*domain.PlanResult, error) {
			gotGraph = graph
			return &domain.PlanResult{PlanID: "plan-2", Schemas: domain.SchemaMap{}}, nil
		},
	}

	flowDoc := `apiVersion: flowplan/v1
kind: Flow
metadata:
  name: orders
spec:
  nodes:
    - id: src
      type: file
    - id: sink
      type: storage
  edges:
    - source: src
      target: sink
`
	body, err := json.Marshal(map[string]string{"flow": flowDoc})
	require.NoError(t, err)

	rec := doRequest(t, newTestHandler(plans, nil), http.MethodPost, "/v1/plans", string(body))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, gotGraph.Nodes, 2)
	assert.Equal(t, domain.NodeTypeStorage, gotGraph.Nodes[1].Type)
}

func TestCreatePlan_FlowAndNodesExclusive(t *testing.T) {
	body, err := json.Marshal(map[string]any{
		"flow":  "apiVersion: flowplan/v1",
		"nodes": []map[string]string{{"id": "a", "type": "file"}},
	})
	require.NoError(t, err)

	rec := doRequest(t, newTestHandler(nil, nil), http.MethodPost, "/v1/plans", string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "mutually exclusive")
}

func TestCreatePlan_BadFlowDocument(t *testing.T) {
	body, err := json.Marshal(map[string]string{"flow": "apiVersion: wrong/v9\nkind: Flow\n"})
	require.NoError(t, err)

	rec := doRequest(t, newTestHandler(nil, nil), http.MethodPost, "/v1/plans", string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported apiVersion")
}

func TestCreatePlan_BadJSON(t *testing.T) {
	rec := doRequest(t, newTestHandler(nil, nil), http.MethodPost, "/v1/plans", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestCreatePlan_ConflictMapsTo409(t *testing.T) {
	plans := &mockPlanService{
		planFn: func(context.Context, domain.Graph) (*domain.PlanResult, error) {
			return nil, domain.ErrConflict("duplicate node id %q", "a")
		},
	}

	rec := doRequest(t, newTestHandler(plans, nil), http.MethodPost, "/v1/plans", `{"nodes":[]}`)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var apiErr Error
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Code)
	assert.Contains(t, apiErr.Message, "duplicate node id")
}

func TestCreatePlan_ValidationMapsTo400(t *testing.T) {
	plans := &mockPlanService{
		planFn: func(context.Context, domain.Graph) (*domain.PlanResult, error) {
			return nil, domain.ErrValidation("node with empty id")
		},
	}

	rec := doRequest(t, newTestHandler(plans, nil), http.MethodPost, "/v1/plans", `{"nodes":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNodeTypes(t *testing.T) {
	rec := doRequest(t, newTestHandler(nil, nil), http.MethodGet, "/v1/node-types", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		NodeTypes []struct {
			Type          string        `json:"type"`
			DefaultOutput domain.Schema `json:"defaultOutput"`
		} `json:"nodeTypes"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.NodeTypes, 8)
	assert.Equal(t, "file", body.NodeTypes[0].Type)
}
