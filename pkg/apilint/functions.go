package apilint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/daveshanley/vacuum/model"
	"go.yaml.in/yaml/v4"
)

// === YAML helpers ===

func yGet(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func yOpID(op *yaml.Node) string {
	n := yGet(op, "operationId")
	if n != nil {
		return n.Value
	}
	return ""
}

var httpMethodSet = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

var camelRe = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
var snakeRe = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
var kebabRe = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

type opVisitor = func(path, method string, op *yaml.Node)

func forEachOp(root *yaml.Node, fn opVisitor) {
	paths := yGet(root, "paths")
	if paths == nil {
		return
	}
	for i := 0; i < len(paths.Content)-1; i += 2 {
		pathKey := paths.Content[i].Value
		pathItem := paths.Content[i+1]
		if pathItem.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j < len(pathItem.Content)-1; j += 2 {
			method := pathItem.Content[j].Value
			if httpMethodSet[method] {
				fn(pathKey, method, pathItem.Content[j+1])
			}
		}
	}
}

func hasGlobalSecurity(root *yaml.Node) bool {
	sec := yGet(root, "security")
	return sec != nil && len(sec.Content) > 0
}

func rootNode(nodes []*yaml.Node) *yaml.Node {
	if len(nodes) == 0 {
		return nil
	}
	n := nodes[0]
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return n.Content[0]
	}
	return n
}

func makeResult(msg, path, ruleID string, node *yaml.Node, ctx model.RuleFunctionContext) model.RuleFunctionResult {
	return model.RuleFunctionResult{
		Message:   msg,
		Path:      path,
		RuleId:    ruleID,
		StartNode: node,
		EndNode:   node,
		Rule:      ctx.Rule,
	}
}

// opLabel names an operation for messages: the operationId when present,
// otherwise "method path".
func opLabel(op *yaml.Node, path, method string) string {
	if id := yOpID(op); id != "" {
		return id
	}
	return method + " " + path
}

// ================================================================
// check-operation-tags: operations are tagged, with declared tags
// ================================================================

type fnOperationTags struct{}

func (f *fnOperationTags) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkOperationTags"}
}
func (f *fnOperationTags) GetCategory() string { return model.CategoryOperations }

func (f *fnOperationTags) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	declared := map[string]bool{}
	if tags := yGet(root, "tags"); tags != nil {
		for _, t := range tags.Content {
			if name := yGet(t, "name"); name != nil {
				declared[name.Value] = true
			}
		}
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		tags := yGet(op, "tags")
		if tags == nil || len(tags.Content) == 0 {
			results = append(results, makeResult(
				fmt.Sprintf("operation %q is missing 'tags'", opLabel(op, path, method)),
				fmt.Sprintf("$.paths.%s.%s", path, method),
				"check-operation-tags", op, ctx))
			return
		}
		for _, t := range tags.Content {
			if !declared[t.Value] {
				results = append(results, makeResult(
					fmt.Sprintf("operation %q uses undeclared tag %q", opLabel(op, path, method), t.Value),
					fmt.Sprintf("$.paths.%s.%s.tags", path, method),
					"check-operation-tags", t, ctx))
			}
		}
	})
	return results
}

// ================================================================
// check-operation-id: present, unique, lowerCamelCase
// ================================================================

type fnOperationID struct{}

func (f *fnOperationID) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkOperationID"}
}
func (f *fnOperationID) GetCategory() string { return model.CategoryOperations }

func (f *fnOperationID) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	seen := map[string]int{} // operationId → first line
	forEachOp(root, func(path, method string, op *yaml.Node) {
		idNode := yGet(op, "operationId")
		if idNode == nil {
			results = append(results, makeResult(
				fmt.Sprintf("operation %s %s is missing 'operationId'", method, path),
				fmt.Sprintf("$.paths.%s.%s", path, method),
				"check-operation-id", op, ctx))
			return
		}
		if prev, ok := seen[idNode.Value]; ok {
			results = append(results, makeResult(
				fmt.Sprintf("duplicate operationId %q (first seen at line %d)", idNode.Value, prev),
				fmt.Sprintf("$.paths.%s.%s.operationId", path, method),
				"check-operation-id", idNode, ctx))
			return
		}
		seen[idNode.Value] = idNode.Line
		if !camelRe.MatchString(idNode.Value) {
			results = append(results, makeResult(
				fmt.Sprintf("operationId %q is not lowerCamelCase", idNode.Value),
				fmt.Sprintf("$.paths.%s.%s.operationId", path, method),
				"check-operation-id", idNode, ctx))
		}
	})
	return results
}

// ================================================================
// check-operation-summary: every operation carries a summary
// ================================================================

type fnOperationSummary struct{}

func (f *fnOperationSummary) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkOperationSummary"}
}
func (f *fnOperationSummary) GetCategory() string { return model.CategoryOperations }

func (f *fnOperationSummary) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		summary := yGet(op, "summary")
		if summary == nil || strings.TrimSpace(summary.Value) == "" {
			results = append(results, makeResult(
				fmt.Sprintf("operation %q has no summary", opLabel(op, path, method)),
				fmt.Sprintf("$.paths.%s.%s", path, method),
				"check-operation-summary", op, ctx))
		}
	})
	return results
}

// ================================================================
// check-schema-ref: response + request schemas should use $ref
// ================================================================

type fnSchemaRef struct{}

func (f *fnSchemaRef) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkSchemaRef"}
}
func (f *fnSchemaRef) GetCategory() string { return model.CategoryOperations }

func (f *fnSchemaRef) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		opID := opLabel(op, path, method)
		// Check response schemas.
		responses := yGet(op, "responses")
		if responses != nil {
			for i := 0; i < len(responses.Content)-1; i += 2 {
				statusCode := responses.Content[i].Value
				responseObj := responses.Content[i+1]
				if n := findInlineSchema(responseObj); n != nil {
					results = append(results, makeResult(
						fmt.Sprintf("operation %q response %s uses inline schema instead of $ref", opID, statusCode),
						fmt.Sprintf("$.paths.%s.%s.responses.%s", path, method, statusCode),
						"check-schema-ref", n, ctx))
				}
			}
		}
		// Check request body schema.
		reqBody := yGet(op, "requestBody")
		if reqBody != nil {
			if n := findInlineSchema(reqBody); n != nil {
				results = append(results, makeResult(
					fmt.Sprintf("operation %q requestBody uses inline schema instead of $ref", opID),
					fmt.Sprintf("$.paths.%s.%s.requestBody", path, method),
					"check-schema-ref", n, ctx))
			}
		}
	})
	return results
}

func findInlineSchema(obj *yaml.Node) *yaml.Node {
	content := yGet(obj, "content")
	if content == nil {
		return nil
	}
	appJSON := yGet(content, "application/json")
	if appJSON == nil {
		return nil
	}
	schema := yGet(appJSON, "schema")
	if schema == nil {
		return nil
	}
	if yGet(schema, "$ref") == nil {
		return schema
	}
	return nil
}

// ================================================================
// check-error-schema-ref: error responses should use the Error schema
// ================================================================

type fnErrorSchemaRef struct{}

func (f *fnErrorSchemaRef) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkErrorSchemaRef"}
}
func (f *fnErrorSchemaRef) GetCategory() string { return model.CategoryOperations }

func (f *fnErrorSchemaRef) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	checkResponse := func(label, where string, responseObj *yaml.Node) {
		content := yGet(responseObj, "content")
		if content == nil {
			return
		}
		appJSON := yGet(content, "application/json")
		if appJSON == nil {
			return
		}
		schema := yGet(appJSON, "schema")
		if schema == nil {
			return
		}
		ref := yGet(schema, "$ref")
		if ref == nil || !strings.HasSuffix(ref.Value, "/Error") {
			results = append(results, makeResult(
				fmt.Sprintf("%s should reference the Error schema", label),
				where,
				"check-error-schema-ref", schema, ctx))
		}
	}
	forEachOp(root, func(path, method string, op *yaml.Node) {
		responses := yGet(op, "responses")
		if responses == nil {
			return
		}
		opID := opLabel(op, path, method)
		for i := 0; i < len(responses.Content)-1; i += 2 {
			statusCode := responses.Content[i].Value
			if strings.HasPrefix(statusCode, "2") {
				continue
			}
			checkResponse(
				fmt.Sprintf("operation %q response %s", opID, statusCode),
				fmt.Sprintf("$.paths.%s.%s.responses.%s", path, method, statusCode),
				responses.Content[i+1])
		}
	})
	// Shared component responses are error responses by convention.
	sharedResponses := yGet(yGet(root, "components"), "responses")
	if sharedResponses != nil {
		for i := 0; i < len(sharedResponses.Content)-1; i += 2 {
			name := sharedResponses.Content[i].Value
			checkResponse(
				fmt.Sprintf("shared response %q", name),
				fmt.Sprintf("$.components.responses.%s", name),
				sharedResponses.Content[i+1])
		}
	}
	return results
}

// ================================================================
// check-path-kebab-case: path segments are kebab-case
// ================================================================

type fnPathKebabCase struct{}

func (f *fnPathKebabCase) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkPathKebabCase"}
}
func (f *fnPathKebabCase) GetCategory() string { return model.CategoryOperations }

func (f *fnPathKebabCase) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	paths := yGet(root, "paths")
	if paths == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	for i := 0; i < len(paths.Content)-1; i += 2 {
		pathNode := paths.Content[i]
		for _, seg := range strings.Split(strings.Trim(pathNode.Value, "/"), "/") {
			if seg == "" || strings.HasPrefix(seg, "{") {
				continue
			}
			if !kebabRe.MatchString(seg) {
				results = append(results, makeResult(
					fmt.Sprintf("path %q segment %q is not kebab-case", pathNode.Value, seg),
					fmt.Sprintf("$.paths.%s", pathNode.Value),
					"check-path-kebab-case", pathNode, ctx))
			}
		}
	}
	return results
}

// ================================================================
// check-versioned-paths: operational paths live under /v1/
// ================================================================

type fnVersionedPaths struct{}

func (f *fnVersionedPaths) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkVersionedPaths"}
}
func (f *fnVersionedPaths) GetCategory() string { return model.CategoryOperations }

// unversionedPaths may live outside the /v1/ prefix.
var unversionedPaths = map[string]bool{
	"/healthz": true,
}

func (f *fnVersionedPaths) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	paths := yGet(root, "paths")
	if paths == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	for i := 0; i < len(paths.Content)-1; i += 2 {
		pathNode := paths.Content[i]
		if unversionedPaths[pathNode.Value] || strings.HasPrefix(pathNode.Value, "/v1/") {
			continue
		}
		results = append(results, makeResult(
			fmt.Sprintf("path %q is not under /v1/", pathNode.Value),
			fmt.Sprintf("$.paths.%s", pathNode.Value),
			"check-versioned-paths", pathNode, ctx))
	}
	return results
}

// ================================================================
// check-path-param-camel-case: path parameters are camelCase
// ================================================================

type fnPathParamCamelCase struct{}

func (f *fnPathParamCamelCase) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkPathParamCamelCase"}
}
func (f *fnPathParamCamelCase) GetCategory() string { return model.CategoryOperations }

func (f *fnPathParamCamelCase) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachParam(root, func(where string, p *yaml.Node) {
		inNode := yGet(p, "in")
		if inNode == nil || inNode.Value != "path" {
			return
		}
		nameNode := yGet(p, "name")
		if nameNode == nil {
			return
		}
		if !camelRe.MatchString(nameNode.Value) {
			results = append(results, makeResult(
				fmt.Sprintf("path parameter %q is not camelCase", nameNode.Value),
				where,
				"check-path-param-camel-case", nameNode, ctx))
		}
	})
	return results
}

// ================================================================
// check-query-param-snake-case: query parameters are snake_case
// ================================================================

type fnQueryParamSnakeCase struct{}

func (f *fnQueryParamSnakeCase) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkQueryParamSnakeCase"}
}
func (f *fnQueryParamSnakeCase) GetCategory() string { return model.CategoryOperations }

func (f *fnQueryParamSnakeCase) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachParam(root, func(where string, p *yaml.Node) {
		inNode := yGet(p, "in")
		if inNode == nil || inNode.Value != "query" {
			return
		}
		nameNode := yGet(p, "name")
		if nameNode == nil {
			return
		}
		if !snakeRe.MatchString(nameNode.Value) {
			results = append(results, makeResult(
				fmt.Sprintf("query parameter %q is not snake_case", nameNode.Value),
				where,
				"check-query-param-snake-case", nameNode, ctx))
		}
	})
	return results
}

// forEachParam visits every parameter mapping: shared component parameters,
// path-level parameters, and operation-level parameters.
func forEachParam(root *yaml.Node, fn func(where string, p *yaml.Node)) {
	visit := func(where string, params *yaml.Node) {
		if params == nil {
			return
		}
		for _, p := range params.Content {
			if p.Kind == yaml.MappingNode {
				fn(where, p)
			}
		}
	}
	compParams := yGet(yGet(root, "components"), "parameters")
	if compParams != nil {
		for i := 0; i < len(compParams.Content)-1; i += 2 {
			p := compParams.Content[i+1]
			if p.Kind == yaml.MappingNode {
				fn(fmt.Sprintf("$.components.parameters.%s", compParams.Content[i].Value), p)
			}
		}
	}
	paths := yGet(root, "paths")
	if paths == nil {
		return
	}
	for i := 0; i < len(paths.Content)-1; i += 2 {
		pathKey := paths.Content[i].Value
		pathItem := paths.Content[i+1]
		visit(fmt.Sprintf("$.paths.%s.parameters", pathKey), yGet(pathItem, "parameters"))
		for j := 0; j < len(pathItem.Content)-1; j += 2 {
			method := pathItem.Content[j].Value
			if httpMethodSet[method] {
				visit(fmt.Sprintf("$.paths.%s.%s.parameters", pathKey, method),
					yGet(pathItem.Content[j+1], "parameters"))
			}
		}
	}
}

// ================================================================
// check-refs-resolve: local $refs resolve to defined components
// ================================================================

type fnRefsResolve struct{}

func (f *fnRefsResolve) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkRefsResolve"}
}
func (f *fnRefsResolve) GetCategory() string { return model.CategorySchemas }

func (f *fnRefsResolve) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	resolves := func(ref string) bool {
		if !strings.HasPrefix(ref, "#/") {
			return true // external refs not checked
		}
		node := root
		for _, p := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
			node = yGet(node, p)
			if node == nil {
				return false
			}
		}
		return true
	}
	var results []model.RuleFunctionResult
	var walk func(n *yaml.Node)
	walk = func(n *yaml.Node) {
		if n == nil {
			return
		}
		if n.Kind == yaml.MappingNode {
			ref := yGet(n, "$ref")
			if ref != nil && !resolves(ref.Value) {
				results = append(results, makeResult(
					fmt.Sprintf("unresolved $ref %q", ref.Value),
					"$",
					"check-refs-resolve", ref, ctx))
			}
		}
		for _, c := range n.Content {
			walk(c)
		}
	}
	walk(root)
	return results
}

// ================================================================
// check-enum-min-values: enums should have >= 2 values
// ================================================================

type fnEnumMinValues struct{}

func (f *fnEnumMinValues) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkEnumMinValues"}
}
func (f *fnEnumMinValues) GetCategory() string { return model.CategorySchemas }

func (f *fnEnumMinValues) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult

	var walk func(n *yaml.Node, context string)
	walk = func(n *yaml.Node, context string) {
		if n == nil {
			return
		}
		if n.Kind == yaml.MappingNode {
			enumNode := yGet(n, "enum")
			if enumNode != nil && enumNode.Kind == yaml.SequenceNode && len(enumNode.Content) < 2 {
				results = append(results, makeResult(
					fmt.Sprintf("enum%s has only %d value(s)", context, len(enumNode.Content)),
					"$",
					"check-enum-min-values", enumNode, ctx))
			}
		}
		for _, c := range n.Content {
			walk(c, context)
		}
	}

	// Walk schemas for better context.
	schemas := yGet(yGet(root, "components"), "schemas")
	if schemas != nil {
		for i := 0; i < len(schemas.Content)-1; i += 2 {
			schemaName := schemas.Content[i].Value
			walk(schemas.Content[i+1], fmt.Sprintf(" in schema %q", schemaName))
		}
	}

	// Walk paths for inline enums.
	paths := yGet(root, "paths")
	if paths != nil {
		walk(paths, "")
	}
	return results
}

// ================================================================
// check-success-response: every operation declares a 2xx response
// ================================================================

type fnSuccessResponse struct{}

func (f *fnSuccessResponse) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkSuccessResponse"}
}
func (f *fnSuccessResponse) GetCategory() string { return model.CategoryOperations }

func (f *fnSuccessResponse) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		responses := yGet(op, "responses")
		has2xx := false
		if responses != nil {
			for i := 0; i < len(responses.Content)-1; i += 2 {
				if strings.HasPrefix(responses.Content[i].Value, "2") {
					has2xx = true
					break
				}
			}
		}
		if !has2xx {
			results = append(results, makeResult(
				fmt.Sprintf("operation %q declares no 2xx response", opLabel(op, path, method)),
				fmt.Sprintf("$.paths.%s.%s.responses", path, method),
				"check-success-response", op, ctx))
		}
	})
	return results
}

// ================================================================
// check-request-body-required: declared request bodies are required
// ================================================================

type fnRequestBodyRequired struct{}

func (f *fnRequestBodyRequired) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkRequestBodyRequired"}
}
func (f *fnRequestBodyRequired) GetCategory() string { return model.CategoryOperations }

func (f *fnRequestBodyRequired) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		reqBody := yGet(op, "requestBody")
		if reqBody == nil {
			return
		}
		req := yGet(reqBody, "required")
		if req == nil || req.Value != "true" {
			results = append(results, makeResult(
				fmt.Sprintf("operation %q requestBody should set required: true", opLabel(op, path, method)),
				fmt.Sprintf("$.paths.%s.%s.requestBody", path, method),
				"check-request-body-required", reqBody, ctx))
		}
	})
	return results
}

// ================================================================
// check-bad-request-declared: body-accepting operations declare 400
// ================================================================

type fnBadRequestDeclared struct{}

func (f *fnBadRequestDeclared) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkBadRequestDeclared"}
}
func (f *fnBadRequestDeclared) GetCategory() string { return model.CategoryOperations }

func (f *fnBadRequestDeclared) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		if yGet(op, "requestBody") == nil {
			return
		}
		responses := yGet(op, "responses")
		if responses != nil && yGet(responses, "400") != nil {
			return
		}
		results = append(results, makeResult(
			fmt.Sprintf("operation %q accepts a body but declares no 400 response", opLabel(op, path, method)),
			fmt.Sprintf("$.paths.%s.%s.responses", path, method),
			"check-bad-request-declared", op, ctx))
	})
	return results
}

// ================================================================
// check-secured-endpoint-401: secured endpoints should include 401
// ================================================================

type fnSecuredEndpoint401 struct{}

func (f *fnSecuredEndpoint401) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkSecuredEndpoint401"}
}
func (f *fnSecuredEndpoint401) GetCategory() string { return model.CategorySecurity }

func (f *fnSecuredEndpoint401) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	if !hasGlobalSecurity(root) {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		sec := yGet(op, "security")
		if sec != nil && len(sec.Content) == 0 {
			return
		}
		responses := yGet(op, "responses")
		if responses == nil {
			return
		}
		if yGet(responses, "401") != nil {
			return
		}
		results = append(results, makeResult(
			fmt.Sprintf("operation %q has global security but no 401 response", opLabel(op, path, method)),
			fmt.Sprintf("$.paths.%s.%s.responses", path, method),
			"check-secured-endpoint-401", responses, ctx))
	})
	return results
}
