package declarative

import "reflect"

// SchemaDocumentType describes one flow document envelope used for generated
// JSON Schema artifacts.
type SchemaDocumentType struct {
	Kind     string
	FileName string
	Type     reflect.Type
}

// SchemaDocumentTypes returns all supported document envelopes for schema
// generation.
func SchemaDocumentTypes() []SchemaDocumentType {
	return []SchemaDocumentType{
		{Kind: KindNameFlow, FileName: "flow", Type: reflect.TypeOf(FlowDoc{})},
	}
}
