package apilint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempSpec(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mustLint(t *testing.T, content string) []Violation {
	t.Helper()
	path := writeTempSpec(t, content)
	l, err := New(path)
	require.NoError(t, err)
	return l.Run()
}

func mustLintWithConfig(t *testing.T, content string, cfg *Config) []Violation {
	t.Helper()
	path := writeTempSpec(t, content)
	l, err := New(path)
	require.NoError(t, err)
	return l.RunWithConfig(cfg)
}

func findRule(vs []Violation, ruleID string) []Violation {
	var out []Violation
	for _, v := range vs {
		if v.RuleID == ruleID {
			out = append(out, v)
		}
	}
	return out
}

// Minimal valid spec header shared by the rule fixtures.
const specHeader = `openapi: "3.0.3"
info:
  title: Test
  version: "1.0"
servers:
  - url: https://api.example.com
tags:
  - name: plans
    description: Planning
components:
  responses:
    BadRequest:
      description: Invalid input
      content:
        application/json:
          schema:
            $ref: '#/components/schemas/Error'
  schemas:
    Error:
      type: object
      properties:
        message:
          type: string
    PlanResult:
      type: object
      properties:
        planId:
          type: string
`

// ============================================================
// check-operation-tags
// ============================================================

func TestCheckOperationTags_Missing(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      summary: Plan a flow
      responses:
        '200':
          description: ok
`
	vs := findRule(mustLint(t, spec), "check-operation-tags")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "missing 'tags'")
}

func TestCheckOperationTags_Undeclared(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      summary: Plan a flow
      tags: [planner]
      responses:
        '200':
          description: ok
`
	vs := findRule(mustLint(t, spec), "check-operation-tags")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, `undeclared tag "planner"`)
}

func TestCheckOperationTags_Declared(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      summary: Plan a flow
      tags: [plans]
      responses:
        '200':
          description: ok
`
	vs := findRule(mustLint(t, spec), "check-operation-tags")
	assert.Empty(t, vs)
}

// ============================================================
// check-operation-id
// ============================================================

func TestCheckOperationID(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		spec := specHeader + `
paths:
  /v1/plans:
    post:
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-operation-id")
		require.Len(t, vs, 1)
		assert.Contains(t, vs[0].Message, "missing 'operationId'")
	})

	t.Run("duplicate", func(t *testing.T) {
		spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
  /v1/other:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan another flow
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-operation-id")
		require.Len(t, vs, 1)
		assert.Contains(t, vs[0].Message, "duplicate operationId")
	})

	t.Run("not_camel_case", func(t *testing.T) {
		spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: CreatePlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-operation-id")
		require.Len(t, vs, 1)
		assert.Contains(t, vs[0].Message, "not lowerCamelCase")
	})

	t.Run("valid", func(t *testing.T) {
		spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-operation-id")
		assert.Empty(t, vs)
	})
}

// ============================================================
// check-operation-summary
// ============================================================

func TestCheckOperationSummary_Missing(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      responses:
        '200':
          description: ok
`
	vs := findRule(mustLint(t, spec), "check-operation-summary")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "no summary")
}

// ============================================================
// check-schema-ref
// ============================================================

func TestCheckSchemaRef_InlineResponse(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  name:
                    type: string
`
	vs := findRule(mustLint(t, spec), "check-schema-ref")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "inline schema")
}

func TestCheckSchemaRef_RefResponse(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/PlanResult'
`
	vs := findRule(mustLint(t, spec), "check-schema-ref")
	assert.Empty(t, vs)
}

func TestCheckSchemaRef_InlineRequestBody(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
      responses:
        '200':
          description: ok
        '400':
          $ref: '#/components/responses/BadRequest'
`
	vs := findRule(mustLint(t, spec), "check-schema-ref")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "requestBody")
}

func TestCheckSchemaRef_Suppressed(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
          content:
            application/json:
              # apilint:ignore check-schema-ref
              schema:
                type: object
`
	vs := findRule(mustLint(t, spec), "check-schema-ref")
	assert.Empty(t, vs)
}

// ============================================================
// check-error-schema-ref
// ============================================================

func TestCheckErrorSchemaRef_NonErrorRef(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
        '400':
          description: bad request
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/PlanResult'
`
	vs := findRule(mustLint(t, spec), "check-error-schema-ref")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "400")
}

func TestCheckErrorSchemaRef_ErrorRef(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
        '400':
          description: bad request
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
`
	vs := findRule(mustLint(t, spec), "check-error-schema-ref")
	assert.Empty(t, vs)
}

func TestCheckErrorSchemaRef_SharedResponse(t *testing.T) {
	spec := `openapi: "3.0.3"
info:
  title: Test
  version: "1.0"
servers:
  - url: https://api.example.com
components:
  responses:
    Conflict:
      description: conflicting input
      content:
        application/json:
          schema:
            type: object
  schemas:
    Error:
      type: object
paths: {}
`
	vs := findRule(mustLint(t, spec), "check-error-schema-ref")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, `shared response "Conflict"`)
}

func TestCheckErrorSchemaRef_NoContent(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
        '409':
          description: conflict
`
	vs := findRule(mustLint(t, spec), "check-error-schema-ref")
	assert.Empty(t, vs)
}

// ============================================================
// check-path-kebab-case
// ============================================================

func TestCheckPathKebabCase(t *testing.T) {
	t.Run("camel_segment", func(t *testing.T) {
		spec := specHeader + `
paths:
  /v1/nodeTypes:
    get:
      operationId: listNodeTypes
      tags: [plans]
      summary: List node types
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-path-kebab-case")
		require.Len(t, vs, 1)
		assert.Contains(t, vs[0].Message, "not kebab-case")
	})

	t.Run("kebab_segment", func(t *testing.T) {
		spec := specHeader + `
paths:
  /v1/node-types:
    get:
      operationId: listNodeTypes
      tags: [plans]
      summary: List node types
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-path-kebab-case")
		assert.Empty(t, vs)
	})

	t.Run("param_segment_skipped", func(t *testing.T) {
		spec := specHeader + `
paths:
  /v1/plans/{planId}:
    get:
      operationId: getPlan
      tags: [plans]
      summary: Get a plan
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-path-kebab-case")
		assert.Empty(t, vs)
	})
}

// ============================================================
// check-versioned-paths
// ============================================================

func TestCheckVersionedPaths(t *testing.T) {
	t.Run("unversioned", func(t *testing.T) {
		spec := specHeader + `
paths:
  /plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-versioned-paths")
		require.Len(t, vs, 1)
		assert.Contains(t, vs[0].Message, "not under /v1/")
	})

	t.Run("healthz_exempt", func(t *testing.T) {
		spec := specHeader + `
paths:
  /healthz:
    get:
      operationId: getHealth
      tags: [plans]
      summary: Health check
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-versioned-paths")
		assert.Empty(t, vs)
	})

	t.Run("versioned", func(t *testing.T) {
		spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-versioned-paths")
		assert.Empty(t, vs)
	})
}

// ============================================================
// check-path-param-camel-case / check-query-param-snake-case
// ============================================================

func TestCheckPathParamCamelCase(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans/{plan_id}:
    parameters:
      - name: plan_id
        in: path
        required: true
        schema:
          type: string
    get:
      operationId: getPlan
      tags: [plans]
      summary: Get a plan
      responses:
        '200':
          description: ok
`
	vs := findRule(mustLint(t, spec), "check-path-param-camel-case")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "not camelCase")
}

func TestCheckQueryParamSnakeCase(t *testing.T) {
	t.Run("camel_rejected", func(t *testing.T) {
		spec := specHeader + `
paths:
  /v1/plans:
    get:
      operationId: listPlans
      tags: [plans]
      summary: List plans
      parameters:
        - name: maxResults
          in: query
          schema:
            type: integer
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-query-param-snake-case")
		require.Len(t, vs, 1)
		assert.Contains(t, vs[0].Message, "not snake_case")
	})

	t.Run("snake_accepted", func(t *testing.T) {
		spec := specHeader + `
paths:
  /v1/plans:
    get:
      operationId: listPlans
      tags: [plans]
      summary: List plans
      parameters:
        - name: max_results
          in: query
          schema:
            type: integer
      responses:
        '200':
          description: ok
`
		vs := findRule(mustLint(t, spec), "check-query-param-snake-case")
		assert.Empty(t, vs)
	})
}

// ============================================================
// check-refs-resolve
// ============================================================

func TestCheckRefsResolve_Unresolved(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Missing'
`
	vs := findRule(mustLint(t, spec), "check-refs-resolve")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "unresolved $ref")
}

func TestCheckRefsResolve_Resolved(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/PlanResult'
        '400':
          $ref: '#/components/responses/BadRequest'
`
	vs := findRule(mustLint(t, spec), "check-refs-resolve")
	assert.Empty(t, vs)
}

// ============================================================
// check-enum-min-values
// ============================================================

func TestCheckEnumMinValues_SingleValue(t *testing.T) {
	spec := `openapi: "3.0.3"
info:
  title: Test
  version: "1.0"
servers:
  - url: https://api.example.com
components:
  schemas:
    SampleFormat:
      type: object
      properties:
        format:
          type: string
          enum: [json]
paths: {}
`
	vs := findRule(mustLint(t, spec), "check-enum-min-values")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "1 value")
}

func TestCheckEnumMinValues_MultiValue(t *testing.T) {
	spec := `openapi: "3.0.3"
info:
  title: Test
  version: "1.0"
servers:
  - url: https://api.example.com
components:
  schemas:
    SampleFormat:
      type: object
      properties:
        format:
          type: string
          enum: [json, csv]
paths: {}
`
	vs := findRule(mustLint(t, spec), "check-enum-min-values")
	assert.Empty(t, vs)
}

// ============================================================
// check-success-response
// ============================================================

func TestCheckSuccessResponse_Missing(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '400':
          $ref: '#/components/responses/BadRequest'
`
	vs := findRule(mustLint(t, spec), "check-success-response")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "no 2xx response")
}

// ============================================================
// check-request-body-required / check-bad-request-declared
// ============================================================

func TestCheckRequestBodyRequired_Unset(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/PlanResult'
      responses:
        '200':
          description: ok
        '400':
          $ref: '#/components/responses/BadRequest'
`
	vs := findRule(mustLint(t, spec), "check-request-body-required")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "required: true")
}

func TestCheckBadRequestDeclared_Missing(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/PlanResult'
      responses:
        '200':
          description: ok
`
	vs := findRule(mustLint(t, spec), "check-bad-request-declared")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "no 400 response")
}

func TestCheckBadRequestDeclared_Present(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/PlanResult'
      responses:
        '200':
          description: ok
        '400':
          $ref: '#/components/responses/BadRequest'
`
	vs := findRule(mustLint(t, spec), "check-bad-request-declared")
	assert.Empty(t, vs)
}

// ============================================================
// check-secured-endpoint-401
// ============================================================

const securedHeader = `openapi: "3.0.3"
info:
  title: Test
  version: "1.0"
security:
  - BearerAuth: []
servers:
  - url: https://api.example.com
tags:
  - name: plans
    description: Planning
components:
  securitySchemes:
    BearerAuth:
      type: http
      scheme: bearer
  schemas:
    Error:
      type: object
`

func TestCheckSecuredEndpoint401_Missing(t *testing.T) {
	spec := securedHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
`
	vs := findRule(mustLint(t, spec), "check-secured-endpoint-401")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "401")
}

func TestCheckSecuredEndpoint401_SecurityOverrideEmpty(t *testing.T) {
	spec := securedHeader + `
paths:
  /healthz:
    get:
      operationId: getHealth
      tags: [plans]
      summary: Health check
      security: []
      responses:
        '200':
          description: ok
`
	vs := findRule(mustLint(t, spec), "check-secured-endpoint-401")
	assert.Empty(t, vs)
}

func TestCheckSecuredEndpoint401_NoGlobalSecurity(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      summary: Plan a flow
      responses:
        '200':
          description: ok
`
	vs := findRule(mustLint(t, spec), "check-secured-endpoint-401")
	assert.Empty(t, vs)
}

// ============================================================
// Engine tests: Config, utility functions
// ============================================================

func TestConfig_SeverityOverride(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      responses:
        '200':
          description: ok
`
	// check-operation-summary normally fires as warning. Override to error.
	cfg := &Config{Rules: map[string]string{"check-operation-summary": "error"}}
	vs := findRule(mustLintWithConfig(t, spec, cfg), "check-operation-summary")
	require.Len(t, vs, 1)
	assert.Equal(t, SeverityError, vs[0].Severity)
}

func TestConfig_RuleOff(t *testing.T) {
	spec := specHeader + `
paths:
  /v1/plans:
    post:
      operationId: createPlan
      tags: [plans]
      responses:
        '200':
          description: ok
`
	cfg := &Config{Rules: map[string]string{"check-operation-summary": "off"}}
	vs := findRule(mustLintWithConfig(t, spec, cfg), "check-operation-summary")
	assert.Empty(t, vs)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".apilint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  check-schema-ref: \"off\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "off", cfg.Rules["check-schema-ref"])
}

func TestRegisteredRules_NotEmpty(t *testing.T) {
	rules := RegisteredRules()
	assert.Greater(t, len(rules), 10, "expected at least 10 registered rules")

	// Verify IDs are unique.
	ids := map[string]bool{}
	for _, r := range rules {
		assert.False(t, ids[r.ID], "duplicate rule ID: %s", r.ID)
		ids[r.ID] = true
	}
}

func TestFilter_BySeverity(t *testing.T) {
	vs := []Violation{
		{Severity: SeverityError, RuleID: "E1"},
		{Severity: SeverityWarning, RuleID: "W1"},
		{Severity: SeverityInfo, RuleID: "I1"},
	}

	t.Run("error_only", func(t *testing.T) {
		filtered := Filter(vs, SeverityError)
		require.Len(t, filtered, 1)
		assert.Equal(t, "E1", filtered[0].RuleID)
	})
	t.Run("warning_and_above", func(t *testing.T) {
		filtered := Filter(vs, SeverityWarning)
		require.Len(t, filtered, 2)
	})
	t.Run("all", func(t *testing.T) {
		filtered := Filter(vs, SeverityInfo)
		require.Len(t, filtered, 3)
	})
}

func TestHasErrors(t *testing.T) {
	t.Run("with_errors", func(t *testing.T) {
		assert.True(t, HasErrors([]Violation{{Severity: SeverityError}}))
	})
	t.Run("only_warnings", func(t *testing.T) {
		assert.False(t, HasErrors([]Violation{{Severity: SeverityWarning}}))
	})
	t.Run("empty", func(t *testing.T) {
		assert.False(t, HasErrors(nil))
	})
}

func TestViolation_String(t *testing.T) {
	v := Violation{
		File:     "openapi.yaml",
		Line:     42,
		RuleID:   "check-schema-ref",
		Severity: SeverityWarning,
		Message:  "test message",
	}
	assert.Equal(t, "openapi.yaml:42: check-schema-ref warning: test message", v.String())
}

func TestLintProjectContract(t *testing.T) {
	// Lint the bundled contract and ensure 0 error-level violations.
	path := "../../api/openapi.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("openapi.yaml not found at expected path")
	}

	l, err := New(path)
	require.NoError(t, err)

	errors := Filter(l.Run(), SeverityError)
	for _, v := range errors {
		t.Errorf("%s", v)
	}
	assert.Empty(t, errors, "expected 0 error-level violations in api/openapi.yaml")
}
