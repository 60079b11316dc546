// Package main generates markdown reference docs from the OpenAPI document
// and the flow-document JSON Schema artifacts.
package main

import (
	"flag"
	"fmt"
	"os"

	"flowplan/internal/docsgen/declarative"
	"flowplan/internal/docsgen/openapi"
)

func main() {
	openapiPath := flag.String("openapi", "api/openapi.yaml", "path to the OpenAPI document")
	declIndexPath := flag.String("declarative-index", "schemas/declarative/v1/index.json", "path to the flow schema manifest")
	declDir := flag.String("declarative-dir", "schemas/declarative/v1", "path to the flow schema directory")
	outDir := flag.String("outdir", "docs/reference/generated", "output directory for generated docs")
	flag.Parse()

	apiOut := fmt.Sprintf("%s/api", *outDir)
	if err := openapi.Generate(*openapiPath, apiOut); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: generate API docs: %v\n", err)
		os.Exit(1)
	}

	declOut := fmt.Sprintf("%s/declarative", *outDir)
	if err := declarative.Generate(*declIndexPath, *declDir, declOut); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: generate flow schema docs: %v\n", err)
		os.Exit(1)
	}
}
