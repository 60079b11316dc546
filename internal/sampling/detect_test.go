package sampling

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowplan/internal/domain"
)

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDetectSchema_JSONFile(t *testing.T) {
	p := writeSample(t, "users.json",
		`[{"id": 1, "email": "a@b.com"}, {"id": 2, "email": null}]`)

	d := NewDetector(NewRegistry(), Limits{})
	schema, err := d.DetectSchema(context.Background(), p, "")
	require.NoError(t, err)

	require.Equal(t, []string{"email", "id"}, schema.Names())
	email, _ := schema.FieldByName("email")
	assert.Equal(t, domain.FieldTypeEmail, email.Type)
	assert.True(t, email.Nullable)
	id, _ := schema.FieldByName("id")
	assert.Equal(t, domain.FieldTypeNumber, id.Type)
	assert.False(t, id.Nullable)
}

func TestDetectSchema_CSVRefinesLiterals(t *testing.T) {
	p := writeSample(t, "users.csv",
		"email,joined,site,notes\na@b.com,2024-01-15,https://example.com/x,hello\n")

	d := NewDetector(NewRegistry(), Limits{})
	schema, err := d.DetectSchema(context.Background(), p, "")
	require.NoError(t, err)

	email, _ := schema.FieldByName("email")
	assert.Equal(t, domain.FieldTypeEmail, email.Type)
	joined, _ := schema.FieldByName("joined")
	assert.Equal(t, domain.FieldTypeDate, joined.Type)
	site, _ := schema.FieldByName("site")
	assert.Equal(t, domain.FieldTypeURL, site.Type)
	notes, _ := schema.FieldByName("notes")
	assert.Equal(t, domain.FieldTypeString, notes.Type)
}

func TestDetectSchema_ByteLimitTruncates(t *testing.T) {
	p := writeSample(t, "big.json",
		`[{"key": "aaaaaaaaaa"}, {"key": "bbbbbbbbbb"}, {"key": "cccccccccc"}]`)

	d := NewDetector(NewRegistry(), Limits{MaxBytes: 30, MaxRecords: 100})
	schema, err := d.DetectSchema(context.Background(), p, "")
	require.NoError(t, err)
	require.Equal(t, []string{"key"}, schema.Names())
}

func TestDetectSchema_MissingFile(t *testing.T) {
	d := NewDetector(NewRegistry(), Limits{})
	_, err := d.DetectSchema(context.Background(), filepath.Join(t.TempDir(), "absent.json"), "")
	assert.Error(t, err)
}

func TestDetectSchema_UnknownScheme(t *testing.T) {
	d := NewDetector(NewRegistry(), Limits{})
	_, err := d.DetectSchema(context.Background(), "s3://bucket/key.json", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fetcher registered")
}

func TestDetectSchema_FormatOverridesExtension(t *testing.T) {
	p := writeSample(t, "data.txt", "a,b\n1,x\n")

	d := NewDetector(NewRegistry(), Limits{})
	schema, err := d.DetectSchema(context.Background(), p, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, schema.Names())
}
