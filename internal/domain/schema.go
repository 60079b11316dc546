package domain

// FieldType is the closed set of semantic field types a schema field can carry.
type FieldType string

// Field type constants.
const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeDate    FieldType = "date"
	FieldTypeEmail   FieldType = "email"
	FieldTypeURL     FieldType = "url"
	FieldTypeObject  FieldType = "object"
	FieldTypeArray   FieldType = "array"
)

// FieldTypes lists every valid field type in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeString, FieldTypeNumber, FieldTypeBoolean, FieldTypeDate,
		FieldTypeEmail, FieldTypeURL, FieldTypeObject, FieldTypeArray,
	}
}

// Valid reports whether t is one of the eight known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeBoolean, FieldTypeDate,
		FieldTypeEmail, FieldTypeURL, FieldTypeObject, FieldTypeArray:
		return true
	}
	return false
}

// Field describes one named, typed attribute of a record shape.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Type        FieldType `json:"type" yaml:"type"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Nullable    bool      `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// UserDefined marks fields built from a mapping rather than a node's
	// intrinsic shape. UserModifiable marks pass-through fields the editor
	// may rewrite. Examples holds up to three stringified sample values
	// retained by inference for diagnostics.
	UserDefined    bool     `json:"userDefined,omitempty" yaml:"user_defined,omitempty"`
	UserModifiable bool     `json:"userModifiable,omitempty" yaml:"user_modifiable,omitempty"`
	Examples       []string `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Schema is an ordered sequence of fields. Order is insertion order and matters
// for rendering; matching between schemas is always by name.
type Schema []Field

// FieldByName returns a copy of the named field and whether it exists.
func (s Schema) FieldByName(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HasField reports whether a field with the given name exists.
func (s Schema) HasField(name string) bool {
	_, ok := s.FieldByName(name)
	return ok
}

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Clone returns a deep copy of the schema.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	copy(out, s)
	for i := range out {
		if len(s[i].Examples) > 0 {
			out[i].Examples = append([]string(nil), s[i].Examples...)
		}
	}
	return out
}

// Validate checks that field names are unique and types are known.
func (s Schema) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, f := range s {
		if f.Name == "" {
			return ErrValidation("schema field with empty name")
		}
		if _, ok := seen[f.Name]; ok {
			return ErrValidation("duplicate schema field %q", f.Name)
		}
		seen[f.Name] = struct{}{}
		if !f.Type.Valid() {
			return ErrValidation("field %q has unknown type %q", f.Name, f.Type)
		}
	}
	return nil
}
