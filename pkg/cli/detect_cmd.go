package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDetectCmd() *cobra.Command {
	var (
		uri    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect the schema of a file source",
		Long:  "Samples a local or remote file (s3://, gs://, az:// with credentials configured) and prints the detected schema.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newOfflineApp(cmd.Context())
			if err != nil {
				return err
			}

			schema, err := a.Detector.DetectSchema(cmd.Context(), uri, format)
			if err != nil {
				return fmt.Errorf("detect %s: %w", uri, err)
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, schema)
			}
			writeSchemaTable(os.Stdout, schema)
			return nil
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "", "Source URI (path, s3://, gs://, az://)")
	cmd.Flags().StringVar(&format, "format", "", "Source format (csv, json; inferred from the extension when empty)")
	_ = cmd.MarkFlagRequired("uri")

	return cmd
}
