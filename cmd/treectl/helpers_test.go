package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const scenarioYAML = `
value: 0
children:
  - value: 1
    children: [2, 3]
  - value: 4
    children: [5, 6]
`

const forestJSON = `[{"value": "a", "children": ["b"]}, "c"]`

// writeDoc stores content under a temp dir and returns its path.
func writeDoc(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut, piled = false, false, false, false
	limitsName, logDir = "default", ""
	cloneSuffix = "'"
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}
