package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MappingKind is the closed set of mapping variants.
type MappingKind string

// Mapping kind constants.
const (
	MappingDirect      MappingKind = "direct"
	MappingConstant    MappingKind = "constant"
	MappingExpression  MappingKind = "expression"
	MappingAggregate   MappingKind = "aggregate"
	MappingConcatenate MappingKind = "concatenate"
	MappingSplit       MappingKind = "split"
)

// MappingKinds lists every mapping kind in declaration order.
func MappingKinds() []MappingKind {
	return []MappingKind{
		MappingDirect, MappingConstant, MappingExpression,
		MappingAggregate, MappingConcatenate, MappingSplit,
	}
}

// Valid reports whether k is one of the six known mapping kinds.
func (k MappingKind) Valid() bool {
	switch k {
	case MappingDirect, MappingConstant, MappingExpression,
		MappingAggregate, MappingConcatenate, MappingSplit:
		return true
	}
	return false
}

// AggregateFunc is the closed set of aggregate mapping functions.
type AggregateFunc string

// Aggregate function constants.
const (
	AggregateSum   AggregateFunc = "sum"
	AggregateCount AggregateFunc = "count"
	AggregateAvg   AggregateFunc = "avg"
	AggregateMin   AggregateFunc = "min"
	AggregateMax   AggregateFunc = "max"
)

// AggregateFuncs lists every aggregate function in declaration order.
func AggregateFuncs() []AggregateFunc {
	return []AggregateFunc{
		AggregateSum, AggregateCount, AggregateAvg, AggregateMin, AggregateMax,
	}
}

// Valid reports whether f is one of the five known aggregate functions.
func (f AggregateFunc) Valid() bool {
	switch f {
	case AggregateSum, AggregateCount, AggregateAvg, AggregateMin, AggregateMax:
		return true
	}
	return false
}

// Mapping is a tagged variant describing how one output field derives from
// upstream fields or a literal. Which members are read depends on Type.
type Mapping struct {
	Type MappingKind `json:"type" yaml:"type"`

	// direct, aggregate, split
	SourceField string `json:"sourceField,omitempty" yaml:"sourceField,omitempty"`
	// direct fan-in for array/object targets
	SourceFields []string `json:"sourceFields,omitempty" yaml:"sourceFields,omitempty"`

	// constant
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// expression
	Expression string `json:"expression,omitempty" yaml:"expression,omitempty"`

	// aggregate
	Function AggregateFunc `json:"function,omitempty" yaml:"function,omitempty"`

	// concatenate; Sources is the two-element alternate form
	SourceField1 string   `json:"sourceField1,omitempty" yaml:"sourceField1,omitempty"`
	SourceField2 string   `json:"sourceField2,omitempty" yaml:"sourceField2,omitempty"`
	Sources      []string `json:"sources,omitempty" yaml:"sources,omitempty"`
	Separator    string   `json:"separator,omitempty" yaml:"separator,omitempty"`

	// split
	SplitOn string `json:"splitOn,omitempty" yaml:"splitOn,omitempty"`
}

// DirectSources returns the source names a direct mapping references:
// the multi-source list when present, else the single source field.
func (m Mapping) DirectSources() []string {
	if len(m.SourceFields) > 0 {
		return m.SourceFields
	}
	if m.SourceField != "" {
		return []string{m.SourceField}
	}
	return nil
}

// ConcatOperands returns the left and right concatenate operands, resolving
// the sourceField1/sourceField2 form before the two-element sources form.
func (m Mapping) ConcatOperands() (string, string) {
	left, right := m.SourceField1, m.SourceField2
	if left == "" && len(m.Sources) > 0 {
		left = m.Sources[0]
	}
	if right == "" && len(m.Sources) > 1 {
		right = m.Sources[1]
	}
	return left, right
}

// Validate checks the variant tag and enum members; presence of per-variant
// fields is a completeness concern, not a validity one.
func (m Mapping) Validate() error {
	if !m.Type.Valid() {
		return ErrValidation("unknown mapping type %q", m.Type)
	}
	if m.Type == MappingAggregate && m.Function != "" && !m.Function.Valid() {
		return ErrValidation("unknown aggregate function %q", m.Function)
	}
	if m.Type == MappingConcatenate && len(m.Sources) > 2 {
		return ErrValidation("concatenate sources holds %d names, want at most 2", len(m.Sources))
	}
	return nil
}

// MappingSet is an insertion-ordered map from output field name to Mapping.
// Order matters: output schemas built from mappings preserve it.
type MappingSet struct {
	names   []string
	entries map[string]Mapping
}

// NewMappingSet returns an empty mapping set.
func NewMappingSet() *MappingSet {
	return &MappingSet{entries: make(map[string]Mapping)}
}

// Set adds or replaces the mapping for an output field. First insertion fixes
// the field's position.
func (ms *MappingSet) Set(name string, m Mapping) {
	if ms.entries == nil {
		ms.entries = make(map[string]Mapping)
	}
	if _, ok := ms.entries[name]; !ok {
		ms.names = append(ms.names, name)
	}
	ms.entries[name] = m
}

// Get returns the mapping for an output field.
func (ms *MappingSet) Get(name string) (Mapping, bool) {
	if ms == nil || ms.entries == nil {
		return Mapping{}, false
	}
	m, ok := ms.entries[name]
	return m, ok
}

// Has reports whether an output field has a mapping.
func (ms *MappingSet) Has(name string) bool {
	_, ok := ms.Get(name)
	return ok
}

// Names returns the output field names in insertion order.
func (ms *MappingSet) Names() []string {
	if ms == nil {
		return nil
	}
	return append([]string(nil), ms.names...)
}

// Len returns the number of mappings.
func (ms *MappingSet) Len() int {
	if ms == nil {
		return 0
	}
	return len(ms.names)
}

// MarshalJSON renders the set as a JSON object in insertion order.
func (ms *MappingSet) MarshalJSON() ([]byte, error) {
	if ms == nil || len(ms.names) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range ms.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(ms.entries[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object, preserving key order.
func (ms *MappingSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("mappings: expected JSON object, got %v", tok)
	}
	ms.names = nil
	ms.entries = make(map[string]Mapping)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("mappings: non-string key %v", keyTok)
		}
		var m Mapping
		if err := dec.Decode(&m); err != nil {
			return fmt.Errorf("mapping %q: %w", key, err)
		}
		ms.Set(key, m)
	}
	_, err = dec.Token() // closing brace
	return err
}

// MarshalYAML renders the set as a YAML mapping in insertion order.
func (ms *MappingSet) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if ms == nil {
		return node, nil
	}
	for _, name := range ms.names {
		var keyNode, valNode yaml.Node
		keyNode.SetString(name)
		if err := valNode.Encode(ms.entries[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &keyNode, &valNode)
	}
	return node, nil
}

// UnmarshalYAML parses a YAML mapping, preserving document order.
func (ms *MappingSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("mappings: expected YAML mapping, got %v", value.Kind)
	}
	ms.names = nil
	ms.entries = make(map[string]Mapping)
	for i := 0; i < len(value.Content)-1; i += 2 {
		key := value.Content[i].Value
		var m Mapping
		if err := value.Content[i+1].Decode(&m); err != nil {
			return fmt.Errorf("mapping %q: %w", key, err)
		}
		ms.Set(key, m)
	}
	return nil
}
