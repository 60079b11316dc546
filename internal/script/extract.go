// Package script statically recovers schema declarations from user-authored
// transform scripts. Scripts are parsed with the starlark syntax package,
// never executed or resolved.
package script

import (
	"fmt"
	"strings"

	"go.starlark.net/syntax"

	"flowplan/internal/domain"
)

// DeclarationName is the top-level assignment a transform script uses to
// declare the shape its output rows will have.
const DeclarationName = "output_schema"

// ExtractSchema parses a script and recovers its top-level
//
//	output_schema = [{"name": ..., "type": ...}, ...]
//
// declaration. Only fully literal lists of literal dicts are recognized; a
// computed or absent declaration yields a nil schema without error, since the
// shape is simply not statically known. A script that does not parse returns
// an error for the caller to degrade into a plan warning.
func ExtractSchema(src string) (domain.Schema, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	file, err := (&syntax.FileOptions{}).Parse("transform.star", src, 0)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	// The last top-level assignment wins, matching what execution would
	// leave behind. A non-literal reassignment makes the shape unknowable.
	var decl *syntax.ListExpr
	for _, stmt := range file.Stmts {
		assign, ok := stmt.(*syntax.AssignStmt)
		if !ok || assign.Op != syntax.EQ {
			continue
		}
		ident, ok := assign.LHS.(*syntax.Ident)
		if !ok || ident.Name != DeclarationName {
			continue
		}
		if list, ok := assign.RHS.(*syntax.ListExpr); ok {
			decl = list
		} else {
			decl = nil
		}
	}
	if decl == nil {
		return nil, nil
	}

	schema := make(domain.Schema, 0, len(decl.List))
	for _, elem := range decl.List {
		dict, ok := elem.(*syntax.DictExpr)
		if !ok {
			return nil, nil
		}
		field, ok := fieldFromDict(dict)
		if !ok {
			return nil, nil
		}
		schema = append(schema, field)
	}
	return schema, nil
}

// fieldFromDict converts one literal dict entry into a Field. Unknown keys
// are ignored; an unknown declared type degrades to string rather than
// rejecting the declaration.
func fieldFromDict(dict *syntax.DictExpr) (domain.Field, bool) {
	field := domain.Field{Type: domain.FieldTypeString}
	for _, entry := range dict.List {
		kv, ok := entry.(*syntax.DictEntry)
		if !ok {
			return domain.Field{}, false
		}
		key, ok := stringLiteral(kv.Key)
		if !ok {
			return domain.Field{}, false
		}
		switch key {
		case "name":
			name, ok := stringLiteral(kv.Value)
			if !ok {
				return domain.Field{}, false
			}
			field.Name = name
		case "type":
			typ, ok := stringLiteral(kv.Value)
			if !ok {
				return domain.Field{}, false
			}
			if ft := domain.FieldType(typ); ft.Valid() {
				field.Type = ft
			}
		case "description":
			desc, ok := stringLiteral(kv.Value)
			if !ok {
				return domain.Field{}, false
			}
			field.Description = desc
		case "required":
			b, ok := boolLiteral(kv.Value)
			if !ok {
				return domain.Field{}, false
			}
			field.Required = b
		case "nullable":
			b, ok := boolLiteral(kv.Value)
			if !ok {
				return domain.Field{}, false
			}
			field.Nullable = b
		}
	}
	if field.Name == "" {
		return domain.Field{}, false
	}
	return field, true
}

func stringLiteral(expr syntax.Expr) (string, bool) {
	lit, ok := expr.(*syntax.Literal)
	if !ok || lit.Token != syntax.STRING {
		return "", false
	}
	s, ok := lit.Value.(string)
	return s, ok
}

// boolLiteral accepts the True/False identifiers, which the parser leaves as
// plain idents.
func boolLiteral(expr syntax.Expr) (bool, bool) {
	ident, ok := expr.(*syntax.Ident)
	if !ok {
		return false, false
	}
	switch ident.Name {
	case "True":
		return true, true
	case "False":
		return false, true
	}
	return false, false
}
