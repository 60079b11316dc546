// Package infer derives semantic field types and record schemas from sample
// values. Everything here is a pure function over its inputs.
package infer

import (
	"net/url"
	"reflect"
	"regexp"
	"time"

	"flowplan/internal/domain"
)

// Literal format detectors, checked in order: date, email, URL.
var (
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDateRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	dashDateRe  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	emailRe     = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
)

// TypeOf infers the semantic field type of a single sample value. Nil maps to
// string, the safe default; the caller tracks nullability separately.
func TypeOf(value any) domain.FieldType {
	if value == nil {
		return domain.FieldTypeString
	}
	switch v := value.(type) {
	case bool:
		return domain.FieldTypeBoolean
	case float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return domain.FieldTypeNumber
	case string:
		return typeOfString(v)
	case []any:
		return domain.FieldTypeArray
	case map[string]any:
		return domain.FieldTypeObject
	}

	// Values decoded by yaml or handed over as typed Go values.
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return domain.FieldTypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return domain.FieldTypeNumber
	case reflect.String:
		return typeOfString(rv.String())
	case reflect.Slice, reflect.Array:
		return domain.FieldTypeArray
	case reflect.Map, reflect.Struct:
		return domain.FieldTypeObject
	default:
		return domain.FieldTypeString
	}
}

func typeOfString(s string) domain.FieldType {
	if isDateLiteral(s) {
		return domain.FieldTypeDate
	}
	if emailRe.MatchString(s) {
		return domain.FieldTypeEmail
	}
	if isURLLiteral(s) {
		return domain.FieldTypeURL
	}
	return domain.FieldTypeString
}

// isDateLiteral matches the three supported date shapes and confirms each
// with a real parse so 9999-99-99 is not a date.
func isDateLiteral(s string) bool {
	switch {
	case isoDateRe.MatchString(s):
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	case slashDateRe.MatchString(s):
		_, err := time.Parse("01/02/2006", s)
		return err == nil
	case dashDateRe.MatchString(s):
		_, err := time.Parse("01-02-2006", s)
		return err == nil
	}
	return false
}

func isURLLiteral(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Widen unifies a field's established type with a newly sighted one:
// number/string conflicts widen to string, anything meeting object widens to
// object, every other conflict keeps the established type.
func Widen(current, next domain.FieldType) domain.FieldType {
	if current == next {
		return current
	}
	if (current == domain.FieldTypeNumber && next == domain.FieldTypeString) ||
		(current == domain.FieldTypeString && next == domain.FieldTypeNumber) {
		return domain.FieldTypeString
	}
	if current == domain.FieldTypeObject || next == domain.FieldTypeObject {
		return domain.FieldTypeObject
	}
	return current
}
