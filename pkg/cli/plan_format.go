package cli

import (
	"fmt"
	"io"
	"strings"

	"flowplan/internal/domain"
)

// formatPlanText writes a human-readable plan to w: one section per node in
// declaration order, then cycle and warning diagnostics and a summary line.
// If noColor is true, ANSI codes are suppressed.
func formatPlanText(w io.Writer, graph domain.Graph, result *domain.PlanResult, noColor bool) {
	c := colorizer(noColor)

	fmt.Fprintf(w, "%sPlan %s%s\n", c(colorDim), result.PlanID, c(colorReset))

	errorCount := 0
	warningCount := len(result.Warnings)

	for _, n := range graph.Nodes {
		schemas := result.Schemas[n.ID]
		fmt.Fprintf(w, "\n%s# %s (%s)%s\n", c(colorCyan), n.ID, schemas.NodeType, c(colorReset))

		fmt.Fprintf(w, "  input:  %s\n", schemaSummary(schemas.Input))
		fmt.Fprintf(w, "  output: %s\n", schemaSummary(schemas.Output))

		rep, ok := result.Reports[n.ID]
		if !ok {
			continue
		}
		if rep.IsValid {
			fmt.Fprintf(w, "  %s✓%s %s\n", c(colorGreen), c(colorReset), rep.Summary)
		} else {
			fmt.Fprintf(w, "  %s✗%s %s\n", c(colorRed), c(colorReset), rep.Summary)
		}
		for _, e := range rep.Errors {
			fmt.Fprintf(w, "      %serror:%s %s\n", c(colorRed), c(colorReset), e)
		}
		for _, warn := range rep.Warnings {
			fmt.Fprintf(w, "      %swarning:%s %s\n", c(colorYellow), c(colorReset), warn)
		}
		errorCount += len(rep.Errors)
		warningCount += len(rep.Warnings)
	}

	if len(result.CycleNodes) > 0 {
		fmt.Fprintf(w, "\n%s✗ cycle:%s no topological order for %s\n",
			c(colorRed), c(colorReset), strings.Join(result.CycleNodes, ", "))
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "\n%swarning:%s %s", c(colorYellow), c(colorReset), warn)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\n%sPlan:%s %d node(s), %d error(s), %d warning(s).\n",
		c(colorDim), c(colorReset), len(graph.Nodes), errorCount, warningCount)
}

// schemaSummary renders a schema as a compact one-line field list.
func schemaSummary(s domain.Schema) string {
	if len(s) == 0 {
		return "(empty)"
	}
	parts := make([]string, 0, len(s))
	for i := range s {
		part := s[i].Name + ":" + string(s[i].Type)
		if s[i].Required {
			part += "!"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}
