package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Equal(t, "", RenderFileTree("my-tool", nil))
}

func TestRenderFileTree_FlatFiles(t *testing.T) {
	out := RenderFileTree("my-tool", map[string]string{
		"forge.yaml":    "Workspace manifest",
		"manifest.json": "Package manifest",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "my-tool/", lines[0])
	assert.Len(t, lines, 3)
	assert.Contains(t, out, "├── forge.yaml")
	assert.Contains(t, out, "└── manifest.json")
	assert.Contains(t, out, "Workspace manifest")
}

func TestRenderFileTree_NestedDirsSortFirst(t *testing.T) {
	out := RenderFileTree("my-tool", map[string]string{
		"forge.yaml":          "Workspace manifest",
		"proto/service.proto": "Interface definitions",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Directories sort before files at the same level.
	assert.Contains(t, lines[1], "proto/")
	assert.Contains(t, lines[2], "service.proto")
	assert.Contains(t, lines[3], "forge.yaml")
}

func TestRenderFileTree_LeafAlsoParentBecomesDir(t *testing.T) {
	out := RenderFileTree("t", map[string]string{
		"a":   "entry",
		"a/b": "nested file",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "a/")
	assert.Contains(t, lines[2], "b")
}

func TestRenderFileTree_DescriptionAlignment(t *testing.T) {
	out := RenderFileTree("t", map[string]string{
		"a.txt": "first",
	})

	// Description starts at the alignment column.
	line := strings.Split(out, "\n")[1]
	idx := strings.Index(line, "first")
	assert.GreaterOrEqual(t, idx, descriptionColumn)
}
