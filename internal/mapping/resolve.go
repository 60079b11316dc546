// Package mapping evaluates per-field mapping specifications: the output
// field each mapping produces, the upstream fields it references, and
// whether it is structurally complete.
package mapping

import (
	"fmt"
	"regexp"
	"strings"

	"flowplan/internal/domain"
	"flowplan/internal/infer"
)

// refRe matches the expression reference grammar: row.<ident> or
// source<N>.<ident>. The identifier group is what the reference names.
var refRe = regexp.MustCompile(`\b(?:row|source\d+)\.([A-Za-z_][A-Za-z0-9_]*)`)

// Resolution is the outcome of evaluating one mapping against the upstream
// schema available to its node.
type Resolution struct {
	Field             domain.Field `json:"field"`
	ReferencedSources []string     `json:"referencedSources"`
	MissingFields     []string     `json:"missingFields,omitempty"`
	Complete          bool         `json:"complete"`
}

// ResolveOutput evaluates a mapping into the output field it would produce.
// Malformed mappings never fail; they resolve to a best-effort string field
// flagged incomplete. Every produced field is userDefined and never required.
func ResolveOutput(fieldName string, m domain.Mapping, upstream domain.Schema) Resolution {
	res := Resolution{
		Field: domain.Field{
			Name:        fieldName,
			Type:        domain.FieldTypeString,
			UserDefined: true,
		},
		ReferencedSources: []string{},
	}

	switch m.Type {
	case domain.MappingDirect:
		resolveDirect(&res, m, upstream)
	case domain.MappingConstant:
		resolveConstant(&res, m)
	case domain.MappingExpression:
		resolveExpression(&res, m, upstream)
	case domain.MappingAggregate:
		resolveAggregate(&res, m)
	case domain.MappingConcatenate:
		resolveConcatenate(&res, m)
	case domain.MappingSplit:
		resolveSplit(&res, m)
	default:
		res.Field.Description = "Unrecognized mapping"
	}

	return res
}

func resolveDirect(res *Resolution, m domain.Mapping, upstream domain.Schema) {
	sources := m.DirectSources()
	res.ReferencedSources = append(res.ReferencedSources, sources...)
	res.Complete = len(sources) > 0

	switch {
	case len(sources) == 1:
		if src, ok := upstream.FieldByName(sources[0]); ok {
			res.Field.Type = src.Type
			res.Field.Description = src.Description
			if res.Field.Description == "" {
				res.Field.Description = "Mapped from " + sources[0]
			}
		} else {
			res.Field.Description = "Mapped from " + sources[0]
		}
	case len(sources) > 1:
		// multi-source fan-in collects several upstream values into one field
		res.Field.Type = domain.FieldTypeArray
		res.Field.Description = "Mapped from " + strings.Join(sources, ", ")
	}
}

func resolveConstant(res *Resolution, m domain.Mapping) {
	res.Complete = m.Value != nil && m.Value != ""
	res.Field.Type = infer.TypeOf(m.Value)
	res.Field.Description = "Constant: " + renderLiteral(m.Value)
}

func resolveExpression(res *Resolution, m domain.Mapping, upstream domain.Schema) {
	res.Field.Description = "Computed by expression"
	refs := extractReferences(m.Expression)
	res.ReferencedSources = append(res.ReferencedSources, refs...)

	seen := make(map[string]struct{})
	for _, ref := range refs {
		if upstream.HasField(ref) {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		res.MissingFields = append(res.MissingFields, ref)
	}
	res.Complete = m.Expression != "" && len(res.MissingFields) == 0
}

func resolveAggregate(res *Resolution, m domain.Mapping) {
	res.Field.Type = domain.FieldTypeNumber
	res.Field.Description = fmt.Sprintf("%s of %s", m.Function, m.SourceField)
	if m.SourceField != "" {
		res.ReferencedSources = append(res.ReferencedSources, m.SourceField)
	}
	res.Complete = m.SourceField != "" && m.Function != ""
}

func resolveConcatenate(res *Resolution, m domain.Mapping) {
	left, right := m.ConcatOperands()
	if left != "" {
		res.ReferencedSources = append(res.ReferencedSources, left)
	}
	if right != "" {
		res.ReferencedSources = append(res.ReferencedSources, right)
	}
	if m.Separator != "" {
		res.Field.Description = fmt.Sprintf("Concatenation of %s and %s separated by %q", left, right, m.Separator)
	} else {
		res.Field.Description = fmt.Sprintf("Concatenation of %s and %s", left, right)
	}
	res.Complete = left != "" && right != "" && left != right
}

func resolveSplit(res *Resolution, m domain.Mapping) {
	res.Field.Description = fmt.Sprintf("Split of %s by %q", m.SourceField, m.SplitOn)
	if m.SourceField != "" {
		res.ReferencedSources = append(res.ReferencedSources, m.SourceField)
	}
	res.Complete = m.SourceField != "" && m.SplitOn != ""
}

// IsComplete reports whether a mapping has every sub-field its variant
// requires. Expression completeness additionally needs every referenced
// field to exist upstream; the other variants ignore the schema.
func IsComplete(m domain.Mapping, upstream domain.Schema) bool {
	return ResolveOutput("", m, upstream).Complete
}

// ReferencedFields returns the upstream field names a mapping references, in
// order of appearance, duplicates preserved.
func ReferencedFields(m domain.Mapping) []string {
	return ResolveOutput("", m, nil).ReferencedSources
}

// MissingReferences returns the expression references absent from the
// upstream schema, deduplicated, in order of first appearance. Non-expression
// mappings never report missing references.
func MissingReferences(m domain.Mapping, upstream domain.Schema) []string {
	return ResolveOutput("", m, upstream).MissingFields
}

func extractReferences(expr string) []string {
	matches := refRe.FindAllStringSubmatch(expr, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}

// renderLiteral formats a constant's value for its field description.
func renderLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
