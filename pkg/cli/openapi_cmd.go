package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flowplan/internal/openapi"
)

func newOpenAPICmd() *cobra.Command {
	var (
		file      string
		operation string
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Derive a schema from an OpenAPI operation",
		Long:  "Resolves an operation's 200-response schema from an OpenAPI 3 document, the way api nodes do during planning.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := openapi.DeriveFromFile(cmd.Context(), file, operation)
			if err != nil {
				return fmt.Errorf("derive schema: %w", err)
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, schema)
			}
			writeSchemaTable(os.Stdout, schema)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to an OpenAPI 3 document")
	cmd.Flags().StringVar(&operation, "operation", "", "Operation id to derive the response schema from")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("operation")

	return cmd
}
