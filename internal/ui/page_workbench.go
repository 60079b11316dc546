package ui

import (
	"fmt"
	"strings"
	"time"

	"flowplan/internal/domain"

	gomponents "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	html "maragu.dev/gomponents/html"
)

func workbenchPage(flowText string, graph domain.Graph, result *domain.PlanResult, planErr string) gomponents.Node {
	resultNode := gomponents.Node(html.P(html.Class(mutedClass()), gomponents.Text("Run a plan to see node schemas and mapping reports.")))

	if planErr != "" {
		resultNode = html.Div(
			html.Class(cardClass()),
			html.H2(gomponents.Text("Plan Error")),
			html.Pre(gomponents.Text(planErr)),
		)
	} else if result != nil {
		resultNode = planResultSection(graph, result)
	}

	return appPage(
		"Workbench",
		"workbench",
		html.Div(
			html.Class(cardClass()),
			html.Form(
				html.Method("post"),
				html.Action("/ui/plan"),
				html.Label(gomponents.Text("Flow document")),
				html.Textarea(html.Name("flow"), html.Required(), html.Rows("18"), gomponents.Text(flowText)),
				html.Div(
					html.Class("button-row"),
					html.Button(html.Type("submit"), html.Class(primaryButtonClass()), gomponents.Text("Run plan")),
				),
			),
			html.P(html.Class(mutedClass()), gomponents.Text("Planning never executes the pipeline. Malformed node configs degrade to warnings; only missing or duplicate node ids fail.")),
			html.H2(gomponents.Text("Example flows")),
			exampleLinks(),
		),
		resultNode,
	)
}

func planResultSection(graph domain.Graph, result *domain.PlanResult) gomponents.Node {
	sections := []gomponents.Node{summaryCard(graph, result)}

	if len(result.CycleNodes) > 0 {
		sections = append(sections, html.Div(
			html.Class(cardClass()),
			html.H2(gomponents.Text("Cycle Detected")),
			html.P(gomponents.Text("No topological order exists for: "+strings.Join(result.CycleNodes, ", "))),
			html.P(html.Class(mutedClass()), gomponents.Text("Schemas for these nodes reflect only their acyclic upstream edges.")),
		))
	}

	if len(result.Warnings) > 0 {
		items := make([]gomponents.Node, 0, len(result.Warnings))
		for _, w := range result.Warnings {
			items = append(items, html.Li(gomponents.Text(w)))
		}
		sections = append(sections, html.Div(
			html.Class(cardClass()),
			html.H2(gomponents.Text("Warnings")),
			html.Ul(gomponents.Group(items)),
		))
	}

	sections = append(sections, quickFilterCard("Filter nodes by id or type"))
	for _, n := range graph.Nodes {
		sections = append(sections, nodeCard(n, result))
	}

	return gomponents.Group(sections)
}

func summaryCard(graph domain.Graph, result *domain.PlanResult) gomponents.Node {
	badge := gomponents.Node(nil)
	if len(result.Reports) > 0 {
		if result.HasErrors() {
			badge = statusLabel("mapping errors", "danger")
		} else {
			badge = statusLabel("mappings valid", "success")
		}
	}
	meta := fmt.Sprintf("%d node(s) planned, %d mapping report(s)", len(graph.Nodes), len(result.Reports))
	return html.Div(
		html.Class(cardClass()),
		html.Div(
			html.Class("d-flex flex-items-center gap-2"),
			html.H2(gomponents.Text("Plan "+result.PlanID)),
			badge,
		),
		html.P(html.Class(mutedClass()), gomponents.Text("Generated at "+result.GeneratedAt.Format(time.RFC3339))),
		html.P(html.Class(mutedClass()), gomponents.Text(meta)),
	)
}

func nodeCard(n domain.Node, result *domain.PlanResult) gomponents.Node {
	schemas := result.Schemas[n.ID]

	body := []gomponents.Node{
		html.Div(
			html.Class("d-flex flex-items-center gap-2"),
			html.H2(gomponents.Text(n.ID)),
			statusLabel(string(schemas.NodeType), "accent"),
		),
		html.Div(
			html.Class("schema-pair"),
			schemaTable("Input", schemas.Input),
			schemaTable("Output", schemas.Output),
		),
	}

	if rep, ok := result.Reports[n.ID]; ok {
		body = append(body, mappingReportBlock(rep))
	}

	return html.Div(
		html.Class(cardClass()),
		data.Show(containsExpr(n.ID+" "+string(schemas.NodeType))),
		gomponents.Group(body),
	)
}

func schemaTable(title string, s domain.Schema) gomponents.Node {
	if len(s) == 0 {
		return html.Div(
			html.Class("schema-col"),
			html.H3(gomponents.Text(title)),
			html.P(html.Class(mutedClass()), gomponents.Text("No fields.")),
		)
	}

	rows := make([]gomponents.Node, 0, len(s))
	for i := range s {
		f := s[i]
		rows = append(rows, html.Tr(
			html.Td(gomponents.Text(f.Name)),
			html.Td(gomponents.Text(string(f.Type))),
			html.Td(gomponents.Text(fieldFlags(f))),
		))
	}

	return html.Div(
		html.Class("schema-col table-wrap"),
		html.H3(gomponents.Text(title)),
		html.Table(
			html.THead(html.Tr(
				html.Th(gomponents.Text("Field")),
				html.Th(gomponents.Text("Type")),
				html.Th(gomponents.Text("Flags")),
			)),
			html.TBody(gomponents.Group(rows)),
		),
	)
}

func fieldFlags(f domain.Field) string {
	var flags []string
	if f.Required {
		flags = append(flags, "required")
	}
	if f.Nullable {
		flags = append(flags, "nullable")
	}
	if f.UserDefined {
		flags = append(flags, "mapped")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ", ")
}

func mappingReportBlock(rep domain.MappingReport) gomponents.Node {
	badge := statusLabel("valid", "success")
	if !rep.IsValid {
		badge = statusLabel(fmt.Sprintf("%d error(s)", len(rep.Errors)), "danger")
	}

	parts := []gomponents.Node{
		html.Div(
			html.Class("d-flex flex-items-center gap-2"),
			html.H3(gomponents.Text("Mappings")),
			badge,
		),
		html.P(html.Class(mutedClass()), gomponents.Text(rep.Summary)),
	}

	if len(rep.Errors) > 0 {
		items := make([]gomponents.Node, 0, len(rep.Errors))
		for _, e := range rep.Errors {
			items = append(items, html.Li(gomponents.Text(e)))
		}
		parts = append(parts, html.Ul(html.Class("color-fg-danger"), gomponents.Group(items)))
	}
	if len(rep.Warnings) > 0 {
		items := make([]gomponents.Node, 0, len(rep.Warnings))
		for _, w := range rep.Warnings {
			items = append(items, html.Li(gomponents.Text(w)))
		}
		parts = append(parts, html.Ul(html.Class("color-fg-attention"), gomponents.Group(items)))
	}
	if len(rep.UnmappedRequired) > 0 {
		parts = append(parts, html.P(html.Class("color-fg-danger text-small"),
			gomponents.Text("Unmapped required: "+strings.Join(rep.UnmappedRequired, ", "))))
	}

	return html.Div(html.Class("mapping-report"), gomponents.Group(parts))
}

func exampleLinks() gomponents.Node {
	examples := []struct {
		ID    string
		Label string
	}{
		{ID: "orders", Label: "Order cleanup"},
		{ID: "segments", Label: "Customer segments"},
	}

	links := make([]gomponents.Node, 0, len(examples))
	for i := range examples {
		links = append(links, html.A(html.Href("/ui?example="+examples[i].ID), gomponents.Text(examples[i].Label)))
	}
	return html.Div(html.Class("snippet-list"), gomponents.Group(links))
}
