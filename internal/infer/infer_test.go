package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flowplan/internal/domain"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  domain.FieldType
	}{
		{name: "nil is safe default", value: nil, want: domain.FieldTypeString},
		{name: "bool", value: true, want: domain.FieldTypeBoolean},
		{name: "float", value: 3.14, want: domain.FieldTypeNumber},
		{name: "int", value: 42, want: domain.FieldTypeNumber},
		{name: "int64", value: int64(42), want: domain.FieldTypeNumber},
		{name: "iso date", value: "2024-01-15", want: domain.FieldTypeDate},
		{name: "slash date", value: "01/15/2024", want: domain.FieldTypeDate},
		{name: "dash date", value: "01-15-2024", want: domain.FieldTypeDate},
		{name: "date shaped but unparseable", value: "9999-99-99", want: domain.FieldTypeString},
		{name: "month out of range slash", value: "13/45/2024", want: domain.FieldTypeString},
		{name: "email", value: "a@b.com", want: domain.FieldTypeEmail},
		{name: "double at is not email", value: "a@@b.com", want: domain.FieldTypeString},
		{name: "at only", value: "user@host", want: domain.FieldTypeEmail},
		{name: "url", value: "https://example.com/path", want: domain.FieldTypeURL},
		{name: "scheme without host is not url", value: "mailto:someone", want: domain.FieldTypeString},
		{name: "plain string", value: "hello world", want: domain.FieldTypeString},
		{name: "array", value: []any{1, 2}, want: domain.FieldTypeArray},
		{name: "object", value: map[string]any{"a": 1}, want: domain.FieldTypeObject},
		{name: "typed slice", value: []string{"a"}, want: domain.FieldTypeArray},
		{name: "typed map", value: map[string]int{"a": 1}, want: domain.FieldTypeObject},
		{name: "struct", value: struct{ X int }{1}, want: domain.FieldTypeObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.value))
		})
	}
}

func TestWiden(t *testing.T) {
	tests := []struct {
		name    string
		current domain.FieldType
		next    domain.FieldType
		want    domain.FieldType
	}{
		{name: "same type unchanged", current: domain.FieldTypeDate, next: domain.FieldTypeDate, want: domain.FieldTypeDate},
		{name: "number then string", current: domain.FieldTypeNumber, next: domain.FieldTypeString, want: domain.FieldTypeString},
		{name: "string then number", current: domain.FieldTypeString, next: domain.FieldTypeNumber, want: domain.FieldTypeString},
		{name: "anything meets object", current: domain.FieldTypeBoolean, next: domain.FieldTypeObject, want: domain.FieldTypeObject},
		{name: "object meets anything", current: domain.FieldTypeObject, next: domain.FieldTypeArray, want: domain.FieldTypeObject},
		{name: "other conflicts keep first seen", current: domain.FieldTypeDate, next: domain.FieldTypeEmail, want: domain.FieldTypeDate},
		{name: "boolean then number keeps boolean", current: domain.FieldTypeBoolean, next: domain.FieldTypeNumber, want: domain.FieldTypeBoolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Widen(tt.current, tt.next))
		})
	}
}
