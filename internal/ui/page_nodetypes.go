package ui

import (
	"net/http"

	"flowplan/internal/domain"
	"flowplan/internal/service/plan"

	gomponents "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	html "maragu.dev/gomponents/html"
)

func (h *Handler) NodeTypesPage(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, nodeTypesPage(plan.NodeTypeCatalog()))
}

var nodeTypeBlurbs = map[domain.NodeType]string{
	domain.NodeTypeFile:      "Reads records from a file source. Output comes from sampling the file, a preset detected schema, or the placeholder shape below.",
	domain.NodeTypeTransform: "Reshapes records. Mappings or a script define the output; without either the input passes through.",
	domain.NodeTypeAnalytics: "Summarizes its input into the result envelope below.",
	domain.NodeTypeStorage:   "Persists records and emits a write confirmation.",
	domain.NodeTypeAPI:       "Calls an HTTP API. With an OpenAPI document configured, the operation's response schema replaces the envelope below.",
	domain.NodeTypePlugin:    "Runs a named plugin function over the input.",
	domain.NodeTypeVisual:    "Renders a preview. The preview kind selects the output shape.",
	domain.NodeTypeTrigger:   "Starts a run on a schedule and emits the trigger context.",
}

func nodeTypesPage(catalog []plan.NodeTypeInfo) gomponents.Node {
	cards := make([]gomponents.Node, 0, len(catalog))
	for i := range catalog {
		info := catalog[i]
		cards = append(cards, html.Div(
			html.Class(cardClass()),
			data.Show(containsExpr(string(info.Type))),
			html.Div(
				html.Class("d-flex flex-items-center gap-2"),
				html.H2(gomponents.Text(string(info.Type))),
				statusLabel("node type", "accent"),
			),
			html.P(html.Class(mutedClass()), gomponents.Text(nodeTypeBlurbs[info.Type])),
			schemaTable("Default output", info.DefaultOutput),
		))
	}

	return appPage(
		"Node Types",
		"node-types",
		html.Div(
			html.Class(cardClass()),
			html.P(html.Class(mutedClass()), gomponents.Text("Every node type with the output schema an unconfigured node resolves to. Overrides and mappings replace these defaults.")),
		),
		quickFilterCard("Filter node types"),
		gomponents.Group(cards),
	)
}
