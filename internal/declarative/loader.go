package declarative

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"flowplan/internal/domain"
)

// LoadOptions configures YAML loading behavior.
type LoadOptions struct {
	AllowUnknownFields bool
}

// Parse decodes a single flow document held in memory.
func Parse(data []byte) (*Flow, error) {
	return ParseWithOptions(data, LoadOptions{})
}

// ParseWithOptions decodes a single flow document using caller-provided
// loading options.
func ParseWithOptions(data []byte, opts LoadOptions) (*Flow, error) {
	return parseDocument("flow document", data, opts)
}

// LoadFile reads one flow definition file.
func LoadFile(path string) (*Flow, error) {
	return LoadFileWithOptions(path, LoadOptions{})
}

// LoadFileWithOptions reads one flow definition file using caller-provided
// loading options.
func LoadFileWithOptions(path string, opts LoadOptions) (*Flow, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: reading user-specified flow files
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	flow, err := parseDocument(path, data, opts)
	if err != nil {
		return nil, err
	}
	flow.SourcePath = path
	return flow, nil
}

// LoadDirectory reads every *.yaml / *.yml file in dir as a flow definition,
// in lexicographic filename order. Each file's metadata.name must match its
// filename stem and be unique within the directory.
func LoadDirectory(dir string) ([]*Flow, error) {
	return LoadDirectoryWithOptions(dir, LoadOptions{})
}

// LoadDirectoryWithOptions reads a flow directory using caller-provided
// loading options.
func LoadDirectoryWithOptions(dir string, opts LoadOptions) ([]*Flow, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("flow directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("flow directory: %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read flow directory: %w", err)
	}

	var flows []*Flow
	definedIn := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stem, ok := flowFileStem(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		flow, err := LoadFileWithOptions(path, opts)
		if err != nil {
			return nil, err
		}
		if flow.Name != stem {
			return nil, fmt.Errorf("%s: metadata.name %q does not match file name %q", path, flow.Name, stem)
		}
		if prev, dup := definedIn[flow.Name]; dup {
			return nil, fmt.Errorf("%s: flow %q already defined in %s", path, flow.Name, prev)
		}
		definedIn[flow.Name] = path
		flows = append(flows, flow)
	}
	return flows, nil
}

// parseDocument unmarshals and envelope-checks one flow document. src names
// the document in error messages.
func parseDocument(src string, data []byte, opts LoadOptions) (*Flow, error) {
	var doc FlowDoc
	if opts.AllowUnknownFields {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", src, err)
		}
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", src, err)
		}
	}
	if err := validateEnvelope(src, doc.APIVersion, doc.Kind); err != nil {
		return nil, err
	}
	return &Flow{
		Name:        doc.Metadata.Name,
		Description: doc.Metadata.Description,
		Graph:       domain.Graph{Nodes: doc.Spec.Nodes, Edges: doc.Spec.Edges},
	}, nil
}

// validateEnvelope checks the apiVersion and kind fields.
func validateEnvelope(src, apiVersion, kind string) error {
	if apiVersion != SupportedAPIVersion {
		return fmt.Errorf("%s: unsupported apiVersion %q (expected %q)", src, apiVersion, SupportedAPIVersion)
	}
	if kind != KindNameFlow {
		return fmt.Errorf("%s: unexpected kind %q (expected %q)", src, kind, KindNameFlow)
	}
	return nil
}

// flowFileStem strips a recognized YAML extension, reporting whether the
// file is a flow definition candidate.
func flowFileStem(name string) (string, bool) {
	switch {
	case strings.HasSuffix(name, ".yaml"):
		return strings.TrimSuffix(name, ".yaml"), true
	case strings.HasSuffix(name, ".yml"):
		return strings.TrimSuffix(name, ".yml"), true
	}
	return "", false
}
