package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flowplan/internal/infer"
)

func newInferCmd() *cobra.Command {
	var (
		file       string
		sampleSize int
	)

	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Infer a schema from a JSON sample file",
		Long:  "Reads a JSON document (object or array of objects) and prints the inferred record schema.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file) //nolint:gosec // intentional: reading user-specified sample files
			if err != nil {
				return fmt.Errorf("read sample: %w", err)
			}

			var data any
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			schema := infer.SchemaFromData(data, sampleSize)

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, schema)
			}
			writeSchemaTable(os.Stdout, schema)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a JSON sample file")
	cmd.Flags().IntVar(&sampleSize, "sample-size", 0, "Records examined from an array sample (0 = default 100)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
