package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/cli/internal/workspace"
)

// newTestWorkspace writes a small valid workspace to disk and returns its
// directory.
func newTestWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, workspace.FileName), `
name: my-tool
version: 0.2.0
packages:
  - name: sdk
    dir: packages/sdk
`)
	writeFile(t, filepath.Join(dir, "packages", "sdk", "main.py"), "print('hi')\n")
	writeFile(t, filepath.Join(dir, "proto", "svc.proto"), "syntax = \"proto3\";\n")
	writeFile(t, filepath.Join(dir, "manifest.json"), `{
    "app_bundle_id": "4f2c6a9e-1d3b-4e5f-8a7c-9b0d1e2f3a4b",
    "description": "A test tool.",
    "example_prompts": [],
    "manifest_version": 1,
    "name": "my-tool",
    "packages": []
}
`)

	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
