// Package declarative renders markdown reference docs from the generated
// flow-document JSON Schema artifacts.
package declarative

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type manifest struct {
	APIVersion string            `json:"apiVersion"`
	Version    string            `json:"version"`
	Files      map[string]string `json:"files"`
}

type fieldDoc struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// defDoc is one named definition of a kind schema. AdditionalType is set
// instead of Fields for map-shaped definitions such as MappingSet.
type defDoc struct {
	Name           string
	Fields         []fieldDoc
	AdditionalType string
}

type kindDoc struct {
	Title    string
	KindName string
	File     string
	Checksum string
	Fields   []fieldDoc
	Defs     []defDoc
}

// Generate renders flow schema docs into markdown files.
func Generate(indexPath, schemaDir, outDir string) error {
	indexBytes, err := os.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(indexBytes, &m); err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}

	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("clean output dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(outDir, "kinds"), 0o750); err != nil {
		return fmt.Errorf("create kinds dir: %w", err)
	}

	kindFiles := make([]string, 0, len(m.Files))
	for file := range m.Files {
		if strings.HasPrefix(file, "kinds/") && strings.HasSuffix(file, ".schema.json") {
			kindFiles = append(kindFiles, file)
		}
	}
	sort.Strings(kindFiles)

	docs := make([]kindDoc, 0, len(kindFiles))
	for _, relFile := range kindFiles {
		doc, err := parseKindSchema(filepath.Join(schemaDir, relFile))
		if err != nil {
			return fmt.Errorf("parse kind schema %q: %w", relFile, err)
		}
		doc.File = relFile
		doc.Checksum = m.Files[relFile]
		docs = append(docs, doc)

		outPath := filepath.Join(outDir, "kinds", slug(trimSchemaSuffix(filepath.Base(relFile)))+".md")
		if err := writeKindPage(outPath, doc); err != nil {
			return err
		}
	}

	return writeIndexPage(filepath.Join(outDir, "index.md"), m, docs)
}

func parseKindSchema(path string) (kindDoc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return kindDoc{}, fmt.Errorf("read file: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return kindDoc{}, fmt.Errorf("decode json: %w", err)
	}

	defs := asMap(payload["$defs"])

	rootDefName := ""
	if allOf := asSlice(payload["allOf"]); len(allOf) > 0 {
		rootDefName = refName(asString(asMap(allOf[0])["$ref"]))
	}
	if rootDefName == "" {
		return kindDoc{}, fmt.Errorf("could not resolve root definition")
	}

	rootProps := asMap(asMap(defs[rootDefName])["properties"])
	kindName := ""
	if enums := asSlice(asMap(rootProps["kind"])["enum"]); len(enums) > 0 {
		kindName = asString(enums[0])
	}
	if kindName == "" {
		kindName = strings.TrimSuffix(rootDefName, "Doc")
	}

	// Flow documents carry their graph under spec.
	specDefName := refName(asString(asMap(rootProps["spec"])["$ref"]))
	if specDefName == "" {
		return kindDoc{}, fmt.Errorf("root definition %q has no spec reference", rootDefName)
	}
	specDef := asMap(defs[specDefName])
	fields := fieldDocs(asMap(specDef["properties"]), asSlice(specDef["required"]))

	defDocs := make([]defDoc, 0, len(defs))
	defNames := make([]string, 0, len(defs))
	for name := range defs {
		if name == rootDefName || name == specDefName {
			continue
		}
		defNames = append(defNames, name)
	}
	sort.Strings(defNames)
	for _, name := range defNames {
		def := asMap(defs[name])
		props := asMap(def["properties"])
		if len(props) == 0 {
			defDocs = append(defDocs, defDoc{
				Name:           name,
				AdditionalType: schemaType(asMap(def["additionalProperties"])),
			})
			continue
		}
		defDocs = append(defDocs, defDoc{
			Name:   name,
			Fields: fieldDocs(props, asSlice(def["required"])),
		})
	}

	return kindDoc{
		Title:    asString(payload["title"]),
		KindName: kindName,
		Fields:   fields,
		Defs:     defDocs,
	}, nil
}

func fieldDocs(props map[string]any, required []any) []fieldDoc {
	requiredSet := make(map[string]struct{}, len(required))
	for _, value := range required {
		requiredSet[asString(value)] = struct{}{}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]fieldDoc, 0, len(names))
	for _, name := range names {
		fieldSchema := asMap(props[name])
		_, req := requiredSet[name]
		fields = append(fields, fieldDoc{
			Name:        name,
			Type:        schemaType(fieldSchema),
			Required:    req,
			Description: asString(fieldSchema["description"]),
		})
	}
	return fields
}

func writeIndexPage(path string, m manifest, docs []kindDoc) error {
	var b strings.Builder
	b.WriteString(generatedHeader())
	b.WriteString("# Flow Document Reference\n\n")
	b.WriteString("This section is generated from versioned JSON Schema artifacts.\n\n")
	b.WriteString("- API version: `")
	b.WriteString(m.APIVersion)
	b.WriteString("`\n")
	b.WriteString("- Schema version: `")
	b.WriteString(m.Version)
	b.WriteString("`\n\n")
	b.WriteString("## Kinds\n\n")
	for _, doc := range docs {
		name := trimSchemaSuffix(filepath.Base(doc.File))
		b.WriteString("- [")
		b.WriteString(doc.KindName)
		b.WriteString("](./kinds/")
		b.WriteString(slug(name))
		b.WriteString(")")
		b.WriteString(" (`")
		b.WriteString(doc.File)
		b.WriteString("`)\n")
	}

	b.WriteString("\n## Checksums\n\n")
	b.WriteString("| File | SHA256 |\n")
	b.WriteString("| --- | --- |\n")
	for _, doc := range docs {
		b.WriteString("| `")
		b.WriteString(doc.File)
		b.WriteString("` | `")
		b.WriteString(doc.Checksum)
		b.WriteString("` |\n")
	}

	return writeFile(path, b.String())
}

func writeKindPage(path string, doc kindDoc) error {
	var b strings.Builder
	b.WriteString(generatedHeader())
	b.WriteString("# Kind: `")
	b.WriteString(doc.KindName)
	b.WriteString("`\n\n")
	if doc.Title != "" {
		b.WriteString(doc.Title)
		b.WriteString("\n\n")
	}
	b.WriteString("- Schema file: `")
	b.WriteString(doc.File)
	b.WriteString("`\n")
	b.WriteString("- SHA256: `")
	b.WriteString(doc.Checksum)
	b.WriteString("`\n\n")

	b.WriteString("## Spec Fields\n\n")
	writeFieldTable(&b, doc.Fields)

	if len(doc.Defs) > 0 {
		b.WriteString("## Definitions\n\n")
		for _, def := range doc.Defs {
			b.WriteString("### `")
			b.WriteString(def.Name)
			b.WriteString("`\n\n")
			if def.AdditionalType != "" {
				b.WriteString("Map of caller-chosen keys to `")
				b.WriteString(def.AdditionalType)
				b.WriteString("`.\n\n")
				continue
			}
			writeFieldTable(&b, def.Fields)
		}
	}

	return writeFile(path, b.String())
}

func writeFieldTable(b *strings.Builder, fields []fieldDoc) {
	b.WriteString("| Name | Type | Required | Description |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, field := range fields {
		b.WriteString("| `")
		b.WriteString(field.Name)
		b.WriteString("` | `")
		b.WriteString(field.Type)
		b.WriteString("` | `")
		if field.Required {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		b.WriteString("` | ")
		desc := strings.TrimSpace(strings.ReplaceAll(field.Description, "\n", " "))
		desc = strings.ReplaceAll(desc, "|", "\\|")
		if desc == "" {
			desc = "-"
		}
		b.WriteString(desc)
		b.WriteString(" |\n")
	}
	b.WriteString("\n")
}

// schemaType checks enums first: the enum values are the documentation for
// the closed-set fields flow authors care about.
func schemaType(schema map[string]any) string {
	if ref := asString(schema["$ref"]); ref != "" {
		return refName(ref)
	}

	if enums := asSlice(schema["enum"]); len(enums) > 0 {
		vals := make([]string, 0, len(enums))
		for _, enumValue := range enums {
			vals = append(vals, asString(enumValue))
		}
		return "enum(" + strings.Join(vals, ", ") + ")"
	}

	if typed, ok := schema["type"].(string); ok {
		if typed == "array" {
			items := asMap(schema["items"])
			if len(items) == 0 {
				return "array"
			}
			return "array[" + schemaType(items) + "]"
		}
		return typed
	}

	return "object"
}

func refName(ref string) string {
	if ref == "" {
		return ""
	}
	parts := strings.Split(ref, "/")
	return parts[len(parts)-1]
}

func trimSchemaSuffix(name string) string {
	return strings.TrimSuffix(name, ".schema.json")
}

func slug(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.ReplaceAll(value, " ", "-")
	value = strings.ReplaceAll(value, "/", "-")
	value = strings.ReplaceAll(value, "_", "-")
	for strings.Contains(value, "--") {
		value = strings.ReplaceAll(value, "--", "-")
	}
	return strings.Trim(value, "-")
}

func generatedHeader() string {
	return "<!-- Code generated by cmd/docsgen. DO NOT EDIT. -->\n\n"
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory %q: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

func asString(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func asMap(value any) map[string]any {
	m, ok := value.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

func asSlice(value any) []any {
	s, ok := value.([]any)
	if !ok {
		return nil
	}
	return s
}
