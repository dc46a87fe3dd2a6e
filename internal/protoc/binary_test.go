package protoc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestListProtoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.proto"), "syntax = \"proto3\";")
	writeFile(t, filepath.Join(dir, "a.proto"), "syntax = \"proto3\";")
	writeFile(t, filepath.Join(dir, "nested", "c.proto"), "syntax = \"proto3\";")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a proto")

	files, err := ListProtoFiles(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.proto", "b.proto", filepath.Join("nested", "c.proto")}, files)
}

func TestListProtoFiles_Empty(t *testing.T) {
	_, err := ListProtoFiles(t.TempDir())
	assert.ErrorIs(t, err, ErrNoProtoFiles)
}

func TestListProtoFiles_MissingDir(t *testing.T) {
	_, err := ListProtoFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestGenerate_CommandFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "svc.proto"), "syntax = \"proto3\";")

	b := NewBinary("false") // always exits 1
	b.Stderr = nil

	_, err := b.Generate(context.Background(), GenerateOptions{
		ProtoDir: dir,
		OutDir:   filepath.Join(dir, "gen"),
		Plugins:  []string{"python"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "protoc failed with exit code 1")
}

func TestGenerate_CommandSuccess(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "svc.proto"), "syntax = \"proto3\";")

	b := NewBinary("true") // always exits 0

	files, err := b.Generate(context.Background(), GenerateOptions{
		ProtoDir: dir,
		OutDir:   filepath.Join(dir, "gen"),
		Plugins:  []string{"python", "grpc_python"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"svc.proto"}, files)

	// Output directory is created before protoc runs.
	info, err := os.Stat(filepath.Join(dir, "gen"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGenerate_NoInputs(t *testing.T) {
	b := NewBinary("true")

	_, err := b.Generate(context.Background(), GenerateOptions{
		ProtoDir: t.TempDir(),
		OutDir:   t.TempDir(),
		Plugins:  []string{"python"},
	})
	assert.ErrorIs(t, err, ErrNoProtoFiles)
}

func TestCheckVersion_NotFound(t *testing.T) {
	b := NewBinary("definitely-not-a-real-binary-name")
	err := b.CheckVersion(context.Background())
	assert.ErrorIs(t, err, ErrProtocNotFound)
}
