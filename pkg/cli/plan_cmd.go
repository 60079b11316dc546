package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flowplan/internal/declarative"
)

func newPlanCmd() *cobra.Command {
	var (
		file               string
		allowUnknownFields bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute node schemas and mapping reports for a flow",
		Long:  "Loads a flow definition, propagates schemas through the graph, and validates every mapping set. Nothing is executed.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow, err := declarative.LoadFileWithOptions(file, declarative.LoadOptions{
				AllowUnknownFields: allowUnknownFields,
			})
			if err != nil {
				return fmt.Errorf("load flow: %w", err)
			}

			a, err := newOfflineApp(cmd.Context())
			if err != nil {
				return err
			}

			result, err := a.Services.Plan.Plan(cmd.Context(), flow.Graph)
			if err != nil {
				return fmt.Errorf("plan %s: %w", file, err)
			}

			if getOutputFormat(cmd) == "json" {
				if err := printJSON(os.Stdout, result); err != nil {
					return err
				}
			} else {
				formatPlanText(os.Stdout, flow.Graph, result, getNoColor(cmd))
			}

			// Exit code 1 when the plan is unusable (useful for CI).
			if result.HasErrors() || len(result.CycleNodes) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to flow definition file")
	cmd.Flags().BoolVar(&allowUnknownFields, "allow-unknown-fields", false, "Allow unknown YAML fields in the flow document")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
