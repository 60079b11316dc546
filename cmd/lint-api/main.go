// Command lint-api checks an OpenAPI 3.x spec for project convention violations.
//
// Usage:
//
//	go run ./cmd/lint-api [flags] <openapi.yaml>
//
// Flags:
//
//	-severity    Minimum severity to report: error, warning, info (default: all)
//	-config      Path to a rule config file (YAML map of rule ID to severity or "off")
//	-list-rules  Print the registered rules and exit
package main

import (
	"flag"
	"fmt"
	"os"

	"flowplan/pkg/apilint"
)

func main() {
	severity := flag.String("severity", "", "minimum severity to report: error, warning, info (default: all)")
	configPath := flag.String("config", "", "path to a rule config file")
	listRules := flag.Bool("list-rules", false, "print the registered rules and exit")
	flag.Parse()

	if *listRules {
		for _, r := range apilint.RegisteredRules() {
			fmt.Printf("%-32s %-8s %s\n", r.ID, r.Default, r.Description)
		}
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: lint-api [flags] <openapi.yaml>\n")
		os.Exit(2)
	}
	path := flag.Arg(0)

	var cfg *apilint.Config
	if *configPath != "" {
		c, err := apilint.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
		cfg = c
	}

	linter, err := apilint.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	violations := linter.RunWithConfig(cfg)

	if *severity != "" {
		sev := apilint.Severity(*severity)
		switch sev {
		case apilint.SeverityError, apilint.SeverityWarning, apilint.SeverityInfo:
			violations = apilint.Filter(violations, sev)
		default:
			fmt.Fprintf(os.Stderr, "error: unknown severity %q (use: error, warning, info)\n", *severity)
			os.Exit(2)
		}
	}

	for _, v := range violations {
		fmt.Println(v)
	}

	if len(violations) == 0 {
		fmt.Printf("%s: ok (0 violations)\n", path)
	} else {
		fmt.Printf("\n%d violation(s) found\n", len(violations))
	}

	if apilint.HasErrors(violations) {
		os.Exit(1)
	}
}
