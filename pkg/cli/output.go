package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"flowplan/internal/domain"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
)

// colorizer returns ANSI codes verbatim, or empty strings when color is off.
func colorizer(noColor bool) func(string) string {
	return func(code string) string {
		if noColor {
			return ""
		}
		return code
	}
}

// getOutputFormat returns the effective output format from the root command's
// persistent flags.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

func getNoColor(cmd *cobra.Command) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool("no-color")
	return v
}

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeSchemaTable renders one schema as an aligned field table.
func writeSchemaTable(w io.Writer, s domain.Schema) {
	if len(s) == 0 {
		fmt.Fprintln(w, "(no fields)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tTYPE\tFLAGS")
	for i := range s {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s[i].Name, s[i].Type, fieldFlagString(s[i]))
	}
	_ = tw.Flush()
}

func fieldFlagString(f domain.Field) string {
	flags := ""
	add := func(name string) {
		if flags != "" {
			flags += ","
		}
		flags += name
	}
	if f.Required {
		add("required")
	}
	if f.Nullable {
		add("nullable")
	}
	if f.UserDefined {
		add("mapped")
	}
	if flags == "" {
		return "-"
	}
	return flags
}
