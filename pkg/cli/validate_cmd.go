package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flowplan/internal/declarative"
)

func newValidateCmd() *cobra.Command {
	var (
		file               string
		dir                string
		allowUnknownFields bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate flow definition files offline",
		Long:  "Reads flow YAML and checks structure, mappings, and schedules without planning.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (file == "") == (dir == "") {
				return fmt.Errorf("exactly one of --file or --dir is required")
			}

			opts := declarative.LoadOptions{AllowUnknownFields: allowUnknownFields}
			var flows []*declarative.Flow
			if file != "" {
				flow, err := declarative.LoadFileWithOptions(file, opts)
				if err != nil {
					return fmt.Errorf("load flow: %w", err)
				}
				flows = []*declarative.Flow{flow}
			} else {
				loaded, err := declarative.LoadDirectoryWithOptions(dir, opts)
				if err != nil {
					return fmt.Errorf("load flows: %w", err)
				}
				flows = loaded
			}

			var validationErrs []declarative.ValidationError
			for _, flow := range flows {
				validationErrs = append(validationErrs, declarative.Validate(flow)...)
			}

			if len(validationErrs) > 0 {
				if getOutputFormat(cmd) == "json" {
					errMsgs := make([]string, len(validationErrs))
					for i, ve := range validationErrs {
						errMsgs[i] = ve.Error()
					}
					if err := printJSON(os.Stdout, map[string]any{
						"valid":  false,
						"errors": errMsgs,
					}); err != nil {
						return err
					}
					os.Exit(1)
				}
				c := colorizer(getNoColor(cmd))
				fmt.Fprintf(os.Stderr, "%d validation error(s):\n", len(validationErrs))
				for _, ve := range validationErrs {
					fmt.Fprintf(os.Stderr, "  %s✗%s %s\n", c(colorRed), c(colorReset), ve.Error())
				}
				os.Exit(1)
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{"valid": true, "flows": len(flows)})
			}
			fmt.Fprintf(os.Stdout, "%d flow(s) valid.\n", len(flows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a flow definition file")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Path to a directory of flow definitions")
	cmd.Flags().BoolVar(&allowUnknownFields, "allow-unknown-fields", false, "Allow unknown YAML fields in flow documents")

	return cmd
}
