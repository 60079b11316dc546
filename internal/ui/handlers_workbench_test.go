package ui

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowplan/internal/domain"
	"flowplan/internal/service/plan"
)

type mockDetector struct {
	detectFn func(ctx context.Context, uri, format string) (domain.Schema, error)
}

func (m mockDetector) DetectSchema(ctx context.Context, uri, format string) (domain.Schema, error) {
	if m.detectFn == nil {
		panic("mockDetector.DetectSchema called but not configured")
	}
	return m.detectFn(ctx, uri, format)
}

type mockDeriver struct {
	deriveFn func(ctx context.Context, path, operationID string) (domain.Schema, error)
}

func (m mockDeriver) DeriveFromFile(ctx context.Context, path, operationID string) (domain.Schema, error) {
	if m.deriveFn == nil {
		panic("mockDeriver.DeriveFromFile called but not configured")
	}
	return m.deriveFn(ctx, path, operationID)
}

func newTestRouter() chi.Router {
	logger := slog.New(slog.DiscardHandler)
	h := NewHandler(plan.NewPlanService(mockDetector{}, mockDeriver{}, logger), logger)
	r := chi.NewRouter()
	r.Route("/ui", func(r chi.Router) {
		MountRoutes(r, h)
	})
	return r
}

func doGet(t *testing.T, router chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func doPlanPost(t *testing.T, router chi.Router, flowText string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"flow": {flowText}}
	req := httptest.NewRequest(http.MethodPost, "/ui/plan", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWorkbenchPage_RendersDefaultExample(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/ui")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "orders-reporting")
	assert.Contains(t, body, "Flow document")
	assert.Contains(t, body, "Run plan")
}

func TestWorkbenchPage_NamedExample(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/ui?example=segments")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "customer-segments")
}

func TestWorkbenchPlan_RendersSchemasAndReports(t *testing.T) {
	rec := doPlanPost(t, newTestRouter(), ordersExample)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "raw-orders")
	assert.Contains(t, body, "clean-orders")
	assert.Contains(t, body, "warehouse")
	assert.Contains(t, body, "customer_email")
	assert.Contains(t, body, "mappings valid")
	assert.Contains(t, body, "3 of 3 fields mapped")
	assert.NotContains(t, body, "Cycle Detected")
}

func TestWorkbenchPlan_BadDocument(t *testing.T) {
	rec := doPlanPost(t, newTestRouter(), "apiVersion: somethingelse/v9\nkind: Flow\n")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Plan Error")
	assert.Contains(t, body, "unsupported apiVersion")
}

func TestWorkbenchPlan_EmptyFlow(t *testing.T) {
	rec := doPlanPost(t, newTestRouter(), "   ")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "flow document is empty")
}

func TestWorkbenchPlan_DuplicateNodeIDs(t *testing.T) {
	doc := `apiVersion: flowplan/v1
kind: Flow
metadata:
  name: dup
spec:
  nodes:
    - id: a
      type: transform
    - id: a
      type: storage
`
	rec := doPlanPost(t, newTestRouter(), doc)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Plan Error")
	assert.Contains(t, body, "duplicate node id")
}

func TestWorkbenchPlan_CycleCallout(t *testing.T) {
	doc := `apiVersion: flowplan/v1
kind: Flow
metadata:
  name: loop
spec:
  nodes:
    - id: a
      type: transform
    - id: b
      type: transform
  edges:
    - source: a
      target: b
    - source: b
      target: a
`
	rec := doPlanPost(t, newTestRouter(), doc)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Cycle Detected")
	assert.Contains(t, body, "a, b")
}

func TestNodeTypesPage(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/ui/node-types")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Node Types")
	assert.Contains(t, body, "trigger")
	assert.Contains(t, body, "Default output")
}

func TestStaticAssets(t *testing.T) {
	rec := doGet(t, newTestRouter(), "/ui/static/app.css")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".app-shell")
}
