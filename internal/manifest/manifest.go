// Package manifest loads, validates, and normalizes package manifests.
//
// Every buildable package carries a manifest.json describing the tool it
// ships: name, description, example prompts, and a stable bundle id.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	ferrors "github.com/forgekit/cli/internal/errors"
)

// FileName is the package manifest file name.
const FileName = "manifest.json"

// Version is the current manifest schema version.
const Version = 1

// Manifest is a parsed manifest.json.
type Manifest struct {
	// Name is the tool name, lowercase.
	Name string `json:"name"`

	// Description is the human-readable tool description.
	Description string `json:"description"`

	// ExamplePrompts shows users how to invoke the tool.
	ExamplePrompts []string `json:"example_prompts"`

	// ManifestVersion is the manifest schema version.
	ManifestVersion int `json:"manifest_version"`

	// AppBundleID is a stable UUID identifying the tool bundle.
	AppBundleID string `json:"app_bundle_id"`

	// Packages lists extra runtime dependencies of the tool.
	Packages []string `json:"packages"`
}

// New creates a manifest with a fresh bundle id.
func New(name, description string, examplePrompts []string) *Manifest {
	if examplePrompts == nil {
		examplePrompts = []string{}
	}
	return &Manifest{
		Name:            name,
		Description:     description,
		ExamplePrompts:  examplePrompts,
		ManifestVersion: Version,
		AppBundleID:     uuid.NewString(),
		Packages:        []string{},
	}
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NewNotFoundError(
				fmt.Sprintf("%s not found", FileName),
				path,
				"Run 'forge init' to create a new project.",
			)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return Parse(data, path)
}

// Parse parses and validates manifest bytes. location is used in error output.
func Parse(data []byte, location string) (*Manifest, error) {
	if err := ValidateBytes(data, location); err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, ferrors.NewValidationError(
			fmt.Sprintf("invalid JSON in manifest: %v", err),
			location,
			"",
		)
	}

	return &m, nil
}

// Save writes the manifest to path in normalized form.
func (m *Manifest) Save(path string) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// Encode renders the manifest in normalized form: sorted keys, 4-space
// indent, trailing newline. Byte-identical for identical content.
func (m *Manifest) Encode() ([]byte, error) {
	// Round-trip through a map so keys serialize sorted.
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}

	var asMap map[string]interface{}
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}

	data, err := json.MarshalIndent(asMap, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}

	return append(data, '\n'), nil
}

// Normalize parses possibly hand-edited manifest bytes and returns them in
// normalized form, filling omitted optional fields. Used by `forge tidy`.
func Normalize(data []byte, location string) ([]byte, error) {
	m, err := Parse(data, location)
	if err != nil {
		return nil, err
	}

	if m.ExamplePrompts == nil {
		m.ExamplePrompts = []string{}
	}
	if m.Packages == nil {
		m.Packages = []string{}
	}
	sort.Strings(m.Packages)

	return m.Encode()
}
