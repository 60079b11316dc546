// Package openapi derives record schemas for API nodes from OpenAPI
// documents: the operation's 200 JSON response shape, mapped onto the
// engine's semantic field types.
package openapi

import (
	"context"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"flowplan/internal/domain"
	"flowplan/internal/infer"
)

// LoadDocument reads and validates an OpenAPI document from disk.
func LoadDocument(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load openapi document %s: %w", path, err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document %s: %w", path, err)
	}
	return doc, nil
}

// LoadDocumentData parses and validates an in-memory OpenAPI document.
func LoadDocumentData(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// DeriveFromFile loads a document and derives the response schema of one
// operation. Convenience wrapper used by config enrichment and the CLI.
func DeriveFromFile(ctx context.Context, path, operationID string) (domain.Schema, error) {
	doc, err := LoadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	return ResponseSchema(doc, operationID)
}

// ResponseSchema converts the named operation's 200 JSON response into a
// Schema. A list response (top-level array) contributes its item shape, since
// that is the record flowing downstream. Fields are emitted in sorted name
// order; the document's required list marks fields required and nullable
// properties stay nullable.
func ResponseSchema(doc *openapi3.T, operationID string) (domain.Schema, error) {
	op := findOperation(doc, operationID)
	if op == nil {
		return nil, domain.ErrNotFound("operation %q not found in document", operationID)
	}

	resp := op.Responses.Status(200)
	if resp == nil || resp.Value == nil {
		return nil, domain.ErrValidation("operation %q has no 200 response", operationID)
	}
	media := resp.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, domain.ErrValidation("operation %q has no JSON response schema", operationID)
	}

	schema := media.Schema.Value
	if typeOf(schema) == "array" {
		if schema.Items == nil || schema.Items.Value == nil {
			return nil, domain.ErrValidation("operation %q returns an array without an item schema", operationID)
		}
		schema = schema.Items.Value
	}
	if typeOf(schema) != "object" || len(schema.Properties) == 0 {
		return nil, domain.ErrValidation("operation %q response is not an object schema", operationID)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(domain.Schema, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		field := domain.Field{
			Name:        name,
			Type:        fieldType(prop),
			Description: prop.Description,
			Required:    required[name],
			Nullable:    prop.Nullable,
		}
		if field.Description == "" {
			field.Description = infer.FieldDescription(name)
		}
		out = append(out, field)
	}
	return out, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		for _, op := range item.Operations() {
			if op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

// fieldType maps an OpenAPI property onto the engine's semantic types:
// string formats carry the semantics (email, date-time, uri), integer and
// number both land on number.
func fieldType(s *openapi3.Schema) domain.FieldType {
	switch typeOf(s) {
	case "string":
		switch s.Format {
		case "email":
			return domain.FieldTypeEmail
		case "date", "date-time":
			return domain.FieldTypeDate
		case "uri", "url":
			return domain.FieldTypeURL
		}
		return domain.FieldTypeString
	case "integer", "number":
		return domain.FieldTypeNumber
	case "boolean":
		return domain.FieldTypeBoolean
	case "array":
		return domain.FieldTypeArray
	case "object":
		return domain.FieldTypeObject
	default:
		return domain.FieldTypeString
	}
}

func typeOf(s *openapi3.Schema) string {
	if s.Type == nil || len(*s.Type) == 0 {
		return ""
	}
	return (*s.Type)[0]
}
