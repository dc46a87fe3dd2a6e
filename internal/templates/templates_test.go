package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgekit/cli/internal/manifest"
	"github.com/forgekit/cli/internal/workspace"
)

func TestRegistry(t *testing.T) {
	tmpl, err := Get("tool")
	require.NoError(t, err)
	assert.True(t, tmpl.Default)

	_, err = Get("nope")
	assert.Error(t, err)

	assert.Equal(t, []string{"tool", "minimal"}, Names())
	assert.Len(t, List(), 2)
}

func TestListTemplateFiles(t *testing.T) {
	for _, name := range Names() {
		files, err := ListTemplateFiles(name)
		require.NoError(t, err)
		assert.NotEmpty(t, files, "template %s has no files", name)
		assert.Contains(t, files, workspace.FileName)
		assert.Contains(t, files, manifest.FileName)
	}
}

func TestRenderFile(t *testing.T) {
	r := NewRenderer(TemplateData{Name: "my-tool", Version: "0.1.0"})

	out, err := r.RenderFile([]byte("name: {{ .Name }}\n"))
	require.NoError(t, err)
	assert.Equal(t, "name: my-tool\n", string(out))

	_, err = r.RenderFile([]byte("{{ .Name"))
	assert.Error(t, err)
}

func TestGenerate_ToolTemplate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-tool")

	gen := NewGenerator(GenerateOptions{
		TargetDir:    dir,
		TemplateName: "tool",
	})
	result, err := gen.Generate()
	require.NoError(t, err)

	assert.Equal(t, "my-tool", result.Data.Name)
	assert.Equal(t, "MyTool", result.Data.NamePascal)
	assert.NotEmpty(t, result.Data.BundleID)
	assert.Contains(t, result.Files, workspace.FileName)

	// The generated workspace must load and validate.
	ws, err := workspace.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "my-tool", ws.Name)
	assert.True(t, ws.HasTests())

	// The generated manifest must pass schema validation.
	m, err := manifest.Load(filepath.Join(dir, manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "my-tool", m.Name)
	assert.Equal(t, result.Data.BundleID, m.AppBundleID)
}

func TestGenerate_MinimalTemplate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "thin")

	gen := NewGenerator(GenerateOptions{
		TargetDir:    dir,
		TemplateName: "minimal",
	})
	_, err := gen.Generate()
	require.NoError(t, err)

	ws, err := workspace.Load(dir)
	require.NoError(t, err)
	assert.False(t, ws.HasTests())
}

func TestGenerate_RefusesNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("x"), 0o644))

	gen := NewGenerator(GenerateOptions{
		TargetDir:    dir,
		TemplateName: "tool",
		Name:         "my-tool",
	})
	_, err := gen.Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not empty")
}

func TestGenerate_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("x"), 0o644))

	gen := NewGenerator(GenerateOptions{
		TargetDir:    dir,
		TemplateName: "tool",
		Name:         "my-tool",
		Force:        true,
	})
	_, err := gen.Generate()
	assert.NoError(t, err)
}

func TestGenerate_InvalidName(t *testing.T) {
	gen := NewGenerator(GenerateOptions{
		TargetDir:    t.TempDir(),
		TemplateName: "tool",
		Name:         "9lives",
	})
	_, err := gen.Generate()
	assert.Error(t, err)
}

func TestValidateToolName(t *testing.T) {
	assert.NoError(t, ValidateToolName("my-tool"))
	assert.NoError(t, ValidateToolName("tool_2"))
	assert.Error(t, ValidateToolName(""))
	assert.Error(t, ValidateToolName("2fast"))
	assert.Error(t, ValidateToolName("bad/name"))
}

func TestPascalCase(t *testing.T) {
	assert.Equal(t, "MyTool", PascalCase("my-tool"))
	assert.Equal(t, "MyTool", PascalCase("my_tool"))
	assert.Equal(t, "Tool", PascalCase("tool"))
	assert.Equal(t, "Tool", PascalCase("---"))
}
