package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/forgekit/cli/internal/errors"
)

func validManifest() *Manifest {
	return New("my-tool", "Does useful things", []string{"Can you use my-tool for this?"})
}

func TestNew(t *testing.T) {
	m := validManifest()

	assert.Equal(t, "my-tool", m.Name)
	assert.Equal(t, Version, m.ManifestVersion)
	assert.NotNil(t, m.Packages)

	_, err := uuid.Parse(m.AppBundleID)
	assert.NoError(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	m := validManifest()
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.ErrorIs(t, err, ferrors.ErrNotFound)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", "{nope"},
		{"empty name", `{"name":"","description":"d","example_prompts":[],"manifest_version":1,"app_bundle_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}`},
		{"missing description", `{"name":"t","example_prompts":[],"manifest_version":1,"app_bundle_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}`},
		{"bad version", `{"name":"t","description":"d","example_prompts":[],"manifest_version":0,"app_bundle_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}`},
		{"bad bundle id", `{"name":"t","description":"d","example_prompts":[],"manifest_version":1,"app_bundle_id":"not-a-uuid"}`},
		{"prompts not strings", `{"name":"t","description":"d","example_prompts":[1,2],"manifest_version":1,"app_bundle_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json), FileName)
			assert.ErrorIs(t, err, ferrors.ErrValidation)
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	m := validManifest()

	first, err := m.Encode()
	require.NoError(t, err)
	second, err := m.Encode()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, byte('\n'), first[len(first)-1])
}

func TestNormalize(t *testing.T) {
	// Unsorted packages, no trailing newline, uneven formatting.
	in := `{"description":"d","name":"t",
		"example_prompts":["a"],"manifest_version":1,
		"app_bundle_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"packages":["zlib","requests"]}`

	out, err := Normalize([]byte(in), FileName)
	require.NoError(t, err)

	m, err := Parse(out, FileName)
	require.NoError(t, err)
	assert.Equal(t, []string{"requests", "zlib"}, m.Packages)

	// Normalizing the normalized form is a no-op.
	again, err := Normalize(out, FileName)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestNormalize_FillsOmittedPackages(t *testing.T) {
	in := `{"name":"t","description":"d","example_prompts":[],"manifest_version":1,"app_bundle_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}`

	out, err := Normalize([]byte(in), FileName)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"packages": []`)
}

func TestValidateBytes_FromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	m := validManifest()
	require.NoError(t, m.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NoError(t, ValidateBytes(data, path))
}
