// Package main is the entry point for the flowplan CLI binary.
package main

import (
	"os"

	cli "flowplan/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
