package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureStdout redirects os.Stdout to a pipe and returns a function
// that restores stdout and returns the captured output.
// Uses a goroutine to read concurrently, avoiding pipe buffer deadlocks.
func captureStdout(t *testing.T) func() string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	return func() string {
		_ = w.Close()
		<-done
		os.Stdout = old
		return buf.String()
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validFlowDoc = `apiVersion: flowplan/v1
kind: Flow
metadata:
  name: orders-reporting
spec:
  nodes:
    - id: raw-orders
      type: file
      config:
        detected_schema:
          - name: order_id
            type: string
            required: true
          - name: amount
            type: number
    - id: clean-orders
      type: transform
      config:
        mappings:
          order_id:
            type: direct
            sourceField: order_id
          total:
            type: aggregate
            sourceField: amount
            function: sum
  edges:
    - source: raw-orders
      target: clean-orders
`
