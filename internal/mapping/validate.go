package mapping

import (
	"fmt"

	"flowplan/internal/domain"
)

// Validate checks a node's mapping set against its intended output schema
// and reports, never fails: required fields without a mapping are errors,
// optional ones warnings; a sourceless direct mapping and an empty
// expression are errors, an empty constant a warning.
func Validate(outputSchema domain.Schema, mappings *domain.MappingSet) domain.MappingReport {
	report := domain.MappingReport{
		Errors:           []string{},
		Warnings:         []string{},
		UnmappedRequired: []string{},
		UnmappedOptional: []string{},
	}

	mapped := 0
	for _, field := range outputSchema {
		if mappings.Has(field.Name) {
			mapped++
			continue
		}
		if field.Required {
			report.UnmappedRequired = append(report.UnmappedRequired, field.Name)
			report.Errors = append(report.Errors,
				fmt.Sprintf("required field %q is not mapped", field.Name))
		} else {
			report.UnmappedOptional = append(report.UnmappedOptional, field.Name)
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("optional field %q is not mapped", field.Name))
		}
	}

	for _, name := range mappings.Names() {
		m, _ := mappings.Get(name)
		switch m.Type {
		case domain.MappingDirect:
			if len(m.DirectSources()) == 0 {
				report.Errors = append(report.Errors,
					fmt.Sprintf("direct mapping for %q has no source field", name))
			}
		case domain.MappingExpression:
			if m.Expression == "" {
				report.Errors = append(report.Errors,
					fmt.Sprintf("expression mapping for %q is empty", name))
			}
		case domain.MappingConstant:
			if m.Value == nil || m.Value == "" {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("constant mapping for %q has an empty value", name))
			}
		}
	}

	report.IsValid = len(report.Errors) == 0
	report.Summary = fmt.Sprintf("%d error(s), %d warning(s), %d of %d fields mapped",
		len(report.Errors), len(report.Warnings), mapped, len(outputSchema))
	return report
}
