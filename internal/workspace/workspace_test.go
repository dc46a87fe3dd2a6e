package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/forgekit/cli/internal/errors"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
	return dir
}

func TestLoad_Minimal(t *testing.T) {
	dir := writeManifest(t, `
name: my-tool
packages:
  - name: sdk
    dir: packages/sdk
`)

	ws, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "my-tool", ws.Name)
	assert.Equal(t, DefaultVersion, ws.Version)
	assert.Equal(t, filepath.Join(ws.Root, "proto"), ws.ProtoDir())
	assert.Equal(t, filepath.Join(ws.Root, "gen"), ws.GenDir())
	assert.Equal(t, filepath.Join(ws.Root, "dist"), ws.DistDir())
	assert.Equal(t, "OPENAI_API_KEY", ws.Secret.Env)
	assert.Equal(t, "OPENAI_API_KEY", ws.Secret.Key)
	assert.Equal(t, filepath.Join(ws.Root, "gen", "api_config.py"), ws.SecretPath())
	assert.Equal(t, DefaultPlugins(), ws.Generate.Plugins)
	assert.False(t, ws.HasTests())
}

func TestLoad_FullManifest(t *testing.T) {
	dir := writeManifest(t, `
name: my-tool
version: 1.2.3
proto:
  dir: idl
generate:
  out: bindings
dist:
  dir: out
secret:
  env: MY_KEY
  key: API_KEY
  path: bindings/config.py
packages:
  - name: sdk
    dir: packages/sdk
  - name: cli
    dir: packages/cli
tests:
  command: ["go", "test", "./..."]
`)

	ws, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", ws.Version)
	assert.Equal(t, filepath.Join(ws.Root, "idl"), ws.ProtoDir())
	assert.Equal(t, "MY_KEY", ws.Secret.Env)
	assert.Equal(t, "API_KEY", ws.Secret.Key)
	assert.Len(t, ws.Packages, 2)
	assert.True(t, ws.HasTests())
	assert.Equal(t, filepath.Join(ws.Root, "packages", "cli"), ws.PackageDir(ws.Packages[1]))
}

func TestLoad_MissingManifest(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ferrors.ErrNotFound)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := writeManifest(t, "name: [unclosed")
	_, err := Load(dir)
	assert.ErrorIs(t, err, ferrors.ErrValidation)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"empty name", "packages:\n  - name: sdk\n    dir: sdk\n"},
		{"no packages", "name: t\n"},
		{"unnamed package", "name: t\npackages:\n  - dir: sdk\n"},
		{"package without dir", "name: t\npackages:\n  - name: sdk\n"},
		{"duplicate package", "name: t\npackages:\n  - name: sdk\n    dir: a\n  - name: sdk\n    dir: b\n"},
		{"absolute path", "name: t\nproto:\n  dir: /etc\npackages:\n  - name: sdk\n    dir: a\n"},
		{"escaping path", "name: t\ndist:\n  dir: ../elsewhere\npackages:\n  - name: sdk\n    dir: a\n"},
		{"bad plugin name", "name: t\ngenerate:\n  plugins: [\"PY THON\"]\npackages:\n  - name: sdk\n    dir: a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeManifest(t, tt.manifest)
			_, err := Load(dir)
			assert.ErrorIs(t, err, ferrors.ErrValidation)
		})
	}
}
