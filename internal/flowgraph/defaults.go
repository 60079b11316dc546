package flowgraph

import "flowplan/internal/domain"

// filePlaceholderSchema stands in for a file source whose contents have not
// been sampled yet.
func filePlaceholderSchema() domain.Schema {
	return domain.Schema{
		{Name: "id", Type: domain.FieldTypeNumber, Description: "Identifier"},
		{Name: "data", Type: domain.FieldTypeObject, Description: "Raw record data"},
	}
}

// apiEnvelopeSchema is the fixed shape of an API node's output: the HTTP
// response, deliberately not the request's fields.
func apiEnvelopeSchema() domain.Schema {
	return domain.Schema{
		{Name: "status", Type: domain.FieldTypeNumber, Description: "HTTP status code"},
		{Name: "statusText", Type: domain.FieldTypeString, Description: "HTTP status text"},
		{Name: "headers", Type: domain.FieldTypeObject, Description: "Response headers"},
		{Name: "data", Type: domain.FieldTypeObject, Description: "Response body"},
		{Name: "url", Type: domain.FieldTypeString, Description: "Requested URL"},
		{Name: "method", Type: domain.FieldTypeString, Description: "HTTP method"},
		{Name: "timestamp", Type: domain.FieldTypeDate, Description: "Response time"},
	}
}

func analyticsEnvelopeSchema() domain.Schema {
	return domain.Schema{
		{Name: "summary", Type: domain.FieldTypeString, Description: "Analysis summary"},
		{Name: "metrics", Type: domain.FieldTypeObject, Description: "Computed metrics"},
		{Name: "insights", Type: domain.FieldTypeArray, Description: "Generated insights"},
		{Name: "visualizations", Type: domain.FieldTypeArray, Description: "Suggested visualizations"},
		{Name: "analytics_id", Type: domain.FieldTypeString, Description: "Identifier"},
		{Name: "analytics_name", Type: domain.FieldTypeString, Description: "Name"},
		{Name: "analysis_type", Type: domain.FieldTypeString, Description: "Analysis type"},
	}
}

// storageConfirmationSchema is a sink's write confirmation. Size is the one
// optional member; the rest always accompany a completed write.
func storageConfirmationSchema() domain.Schema {
	return domain.Schema{
		{Name: "stored", Type: domain.FieldTypeBoolean, Description: "Whether the write succeeded", Required: true},
		{Name: "location", Type: domain.FieldTypeString, Description: "Where the data was written", Required: true},
		{Name: "size", Type: domain.FieldTypeNumber, Description: "Bytes written"},
		{Name: "timestamp", Type: domain.FieldTypeDate, Description: "Write time", Required: true},
	}
}

func triggerContextSchema() domain.Schema {
	return domain.Schema{
		{Name: "triggered_at", Type: domain.FieldTypeDate, Description: "Date/time value"},
		{Name: "trigger_type", Type: domain.FieldTypeString, Description: "Manual, scheduled, or event"},
		{Name: "run_id", Type: domain.FieldTypeString, Description: "Identifier"},
		{Name: "payload", Type: domain.FieldTypeObject, Description: "Trigger payload"},
	}
}

// pluginFunctionSchemas maps a plugin's selected function to its fixed
// output shape.
var pluginFunctionSchemas = map[string]func() domain.Schema{
	"fetch_records": func() domain.Schema {
		return domain.Schema{
			{Name: "records", Type: domain.FieldTypeArray, Description: "Fetched records"},
			{Name: "count", Type: domain.FieldTypeNumber, Description: "Count"},
		}
	},
	"send_notification": func() domain.Schema {
		return domain.Schema{
			{Name: "sent", Type: domain.FieldTypeBoolean, Description: "Boolean flag"},
			{Name: "message_id", Type: domain.FieldTypeString, Description: "Identifier"},
		}
	},
	"generate_document": func() domain.Schema {
		return domain.Schema{
			{Name: "document_url", Type: domain.FieldTypeURL, Description: "URL/link"},
			{Name: "page_count", Type: domain.FieldTypeNumber, Description: "Count"},
		}
	},
	"run_query": func() domain.Schema {
		return domain.Schema{
			{Name: "rows", Type: domain.FieldTypeArray, Description: "Result rows"},
			{Name: "row_count", Type: domain.FieldTypeNumber, Description: "Count"},
			{Name: "duration_ms", Type: domain.FieldTypeNumber, Description: "Query duration"},
		}
	},
}

func pluginSchema(function string) domain.Schema {
	if build, ok := pluginFunctionSchemas[function]; ok {
		return build()
	}
	return domain.Schema{
		{Name: "result", Type: domain.FieldTypeObject, Description: "Plugin result"},
		{Name: "status", Type: domain.FieldTypeString, Description: "Status value"},
	}
}

func visualSchema(previewKind string) domain.Schema {
	fieldType := domain.FieldTypeObject
	if previewKind == "image" || previewKind == "gif" {
		fieldType = domain.FieldTypeString
	}
	return domain.Schema{
		{Name: "preview", Type: fieldType, Description: "Rendered preview"},
	}
}

func passthrough(input domain.Schema, userModifiable bool) domain.Schema {
	out := input.Clone()
	if out == nil {
		out = domain.Schema{}
	}
	if userModifiable {
		for i := range out {
			out[i].UserModifiable = true
		}
	}
	return out
}
