package infer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"flowplan/internal/domain"
)

// DefaultSampleSize bounds how many records SchemaFromData examines.
const DefaultSampleSize = 100

const maxExamples = 3

// fieldAcc accumulates one field's observations across sampled records.
type fieldAcc struct {
	typ      domain.FieldType
	typed    bool
	nullable bool
	examples []string
}

func (a *fieldAcc) observe(value any) {
	if value == nil {
		// A nil sighting flags nullability but never drives typing.
		a.nullable = true
		return
	}
	t := TypeOf(value)
	if !a.typed {
		a.typ = t
		a.typed = true
	} else {
		a.typ = Widen(a.typ, t)
	}
	if len(a.examples) < maxExamples {
		ex := stringify(value)
		for _, seen := range a.examples {
			if seen == ex {
				return
			}
		}
		a.examples = append(a.examples, ex)
	}
}

func (a *fieldAcc) field(name string) domain.Field {
	typ := a.typ
	if !a.typed {
		typ = domain.FieldTypeString
	}
	return domain.Field{
		Name:        name,
		Type:        typ,
		Description: FieldDescription(name),
		Nullable:    a.nullable,
		Examples:    a.examples,
	}
}

// SchemaFromData infers a schema from sample data: a slice of records (the
// first min(sampleSize, len) object records are unioned) or a single record
// object. sampleSize <= 0 means DefaultSampleSize. Fields come back sorted
// by name so repeated inference over the same data is deterministic.
func SchemaFromData(data any, sampleSize int) domain.Schema {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	switch d := data.(type) {
	case []any:
		return schemaFromRecords(d, sampleSize)
	case []map[string]any:
		records := make([]any, len(d))
		for i, r := range d {
			records[i] = r
		}
		return schemaFromRecords(records, sampleSize)
	case map[string]any:
		return schemaFromRecord(d)
	default:
		return domain.Schema{}
	}
}

func schemaFromRecords(records []any, sampleSize int) domain.Schema {
	if len(records) == 0 {
		return domain.Schema{}
	}
	if len(records) > sampleSize {
		records = records[:sampleSize]
	}

	accs := make(map[string]*fieldAcc)
	for _, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		for name, value := range obj {
			acc := accs[name]
			if acc == nil {
				acc = &fieldAcc{}
				accs[name] = acc
			}
			acc.observe(value)
		}
	}

	return sortedFields(accs)
}

func schemaFromRecord(obj map[string]any) domain.Schema {
	accs := make(map[string]*fieldAcc, len(obj))
	for name, value := range obj {
		acc := &fieldAcc{}
		acc.observe(value)
		accs[name] = acc
	}
	return sortedFields(accs)
}

func sortedFields(accs map[string]*fieldAcc) domain.Schema {
	names := make([]string, 0, len(accs))
	for name := range accs {
		names = append(names, name)
	}
	sort.Strings(names)

	schema := make(domain.Schema, 0, len(names))
	for _, name := range names {
		schema = append(schema, accs[name].field(name))
	}
	return schema
}

// stringify renders a sample value the way a user would expect to read it in
// diagnostics: bare scalars, JSON for composites.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	if b, err := json.Marshal(value); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", value)
}
