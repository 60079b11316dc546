package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowplan/internal/domain"
)

func TestValidate_AllMapped(t *testing.T) {
	schema := domain.Schema{
		{Name: "id", Type: domain.FieldTypeNumber, Required: true},
		{Name: "note", Type: domain.FieldTypeString},
	}
	ms := domain.NewMappingSet()
	ms.Set("id", domain.Mapping{Type: domain.MappingDirect, SourceField: "user_id"})
	ms.Set("note", domain.Mapping{Type: domain.MappingConstant, Value: "n/a"})

	report := Validate(schema, ms)
	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.Empty(t, report.UnmappedRequired)
	assert.Empty(t, report.UnmappedOptional)
	assert.Equal(t, "0 error(s), 0 warning(s), 2 of 2 fields mapped", report.Summary)
}

func TestValidate_RequiredUnmappedIsError(t *testing.T) {
	schema := domain.Schema{
		{Name: "id", Type: domain.FieldTypeNumber, Required: true},
		{Name: "email", Type: domain.FieldTypeEmail, Required: true},
		{Name: "nickname", Type: domain.FieldTypeString},
	}
	ms := domain.NewMappingSet()
	ms.Set("id", domain.Mapping{Type: domain.MappingDirect, SourceField: "uid"})

	report := Validate(schema, ms)
	assert.False(t, report.IsValid)
	assert.Equal(t, []string{"email"}, report.UnmappedRequired)
	assert.Equal(t, []string{"nickname"}, report.UnmappedOptional)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], `required field "email" is not mapped`)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], `optional field "nickname" is not mapped`)
	assert.Equal(t, "1 error(s), 1 warning(s), 1 of 3 fields mapped", report.Summary)
}

func TestValidate_BrokenMappings(t *testing.T) {
	ms := domain.NewMappingSet()
	ms.Set("a", domain.Mapping{Type: domain.MappingDirect})
	ms.Set("b", domain.Mapping{Type: domain.MappingExpression})
	ms.Set("c", domain.Mapping{Type: domain.MappingConstant, Value: ""})

	report := Validate(nil, ms)
	assert.False(t, report.IsValid)
	require.Len(t, report.Errors, 2)
	assert.Contains(t, report.Errors[0], `direct mapping for "a" has no source field`)
	assert.Contains(t, report.Errors[1], `expression mapping for "b" is empty`)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], `constant mapping for "c" has an empty value`)
}

func TestValidate_EmptyInputs(t *testing.T) {
	report := Validate(nil, nil)
	assert.True(t, report.IsValid)
	assert.NotNil(t, report.Errors)
	assert.NotNil(t, report.Warnings)
	assert.Equal(t, "0 error(s), 0 warning(s), 0 of 0 fields mapped", report.Summary)
}

func TestValidate_MappingsBeyondSchemaAreFine(t *testing.T) {
	// mappings may define brand-new output fields; that is how mapped
	// schemas are built in the first place
	ms := domain.NewMappingSet()
	ms.Set("extra", domain.Mapping{Type: domain.MappingDirect, SourceField: "src"})

	report := Validate(domain.Schema{{Name: "kept", Type: domain.FieldTypeString}}, ms)
	assert.True(t, report.IsValid)
	assert.Equal(t, []string{"kept"}, report.UnmappedOptional)
}
