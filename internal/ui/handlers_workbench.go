package ui

import (
	"net/http"
	"strings"

	"flowplan/internal/declarative"
	"flowplan/internal/domain"
)

// maxFlowFormBytes caps the posted flow document. Anything larger than this
// is not an editor payload.
const maxFlowFormBytes = 1 << 20

func (h *Handler) WorkbenchPage(w http.ResponseWriter, r *http.Request) {
	flowText := exampleFlow(r.URL.Query().Get("example"))
	renderHTML(w, http.StatusOK, workbenchPage(flowText, domain.Graph{}, nil, ""))
}

func (h *Handler) WorkbenchPlan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFlowFormBytes)
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Invalid Request", "The submitted form could not be parsed."))
		return
	}

	flowText := r.Form.Get("flow")
	if strings.TrimSpace(flowText) == "" {
		renderHTML(w, http.StatusOK, workbenchPage(flowText, domain.Graph{}, nil, "flow document is empty"))
		return
	}

	flow, err := declarative.Parse([]byte(flowText))
	if err != nil {
		renderHTML(w, http.StatusOK, workbenchPage(flowText, domain.Graph{}, nil, err.Error()))
		return
	}

	result, err := h.Plans.Plan(r.Context(), flow.Graph)
	if err != nil {
		renderHTML(w, http.StatusOK, workbenchPage(flowText, domain.Graph{}, nil, err.Error()))
		return
	}

	renderHTML(w, http.StatusOK, workbenchPage(flowText, flow.Graph, result, ""))
}

// exampleFlow returns the editor's starting document for a named example.
// Unknown names fall back to the default example.
func exampleFlow(id string) string {
	switch id {
	case "segments":
		return segmentsExample
	default:
		return ordersExample
	}
}

const ordersExample = `apiVersion: flowplan/v1
kind: Flow
metadata:
  name: orders-reporting
  description: Clean raw order exports into a reporting shape.
spec:
  nodes:
    - id: raw-orders
      type: file
      config:
        file_path: exports/orders.csv
        file_format: csv
        detected_schema:
          - name: order_id
            type: string
            required: true
          - name: amount
            type: number
          - name: customer_email
            type: email
          - name: created_at
            type: date
    - id: clean-orders
      type: transform
      config:
        mappings:
          order_id:
            type: direct
            sourceField: order_id
          total:
            type: aggregate
            sourceField: amount
            function: sum
          contact:
            type: direct
            sourceField: customer_email
    - id: warehouse
      type: storage
  edges:
    - source: raw-orders
      target: clean-orders
    - source: clean-orders
      target: warehouse
`

const segmentsExample = `apiVersion: flowplan/v1
kind: Flow
metadata:
  name: customer-segments
  description: Build display names and segments from two customer exports.
spec:
  nodes:
    - id: customers
      type: file
      config:
        file_path: exports/customers.csv
        file_format: csv
        detected_schema:
          - name: customer_id
            type: string
            required: true
          - name: first_name
            type: string
          - name: last_name
            type: string
          - name: country
            type: string
    - id: activity
      type: file
      config:
        file_path: exports/activity.json
        file_format: json
        detected_schema:
          - name: customer_id
            type: string
            required: true
          - name: purchases
            type: number
    - id: segment
      type: transform
      config:
        mappings:
          customer_id:
            type: direct
            sourceField: customer_id
          full_name:
            type: concatenate
            sourceField1: first_name
            sourceField2: last_name
            separator: " "
          region:
            type: direct
            sourceField: country
          score:
            type: expression
            expression: row.purchases * 1.5
    - id: preview
      type: visual
      config:
        preview_kind: table
  edges:
    - source: customers
      target: segment
    - source: activity
      target: segment
    - source: segment
      target: preview
`
