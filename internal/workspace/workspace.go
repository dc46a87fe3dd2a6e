// Package workspace loads and validates forge.yaml workspace manifests.
//
// A workspace is a directory holding package sources, protobuf interface
// definitions, and the forge.yaml manifest describing how to build them.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	ferrors "github.com/forgekit/cli/internal/errors"
)

// pluginNameRe matches valid protoc plugin names.
var pluginNameRe = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// FileName is the workspace manifest file name.
const FileName = "forge.yaml"

// Defaults applied to unset workspace fields.
const (
	DefaultProtoDir   = "proto"
	DefaultGenOut     = "gen"
	DefaultDistDir    = "dist"
	DefaultSecretEnv  = "OPENAI_API_KEY"
	DefaultSecretKey  = "OPENAI_API_KEY"
	DefaultSecretPath = "gen/api_config.py"
	DefaultVersion    = "0.1.0"
)

// DefaultPlugins returns the default protoc output plugins: message
// bindings plus gRPC service stubs.
func DefaultPlugins() []string {
	return []string{"python", "grpc_python"}
}

// ProtoConfig describes the interface-definition inputs.
type ProtoConfig struct {
	// Dir is the directory of .proto files, relative to the workspace root.
	Dir string `yaml:"dir"`
}

// GenerateConfig describes the binding generation outputs.
type GenerateConfig struct {
	// Out is the generated-bindings output directory, relative to the
	// workspace root. Shared by all packages.
	Out string `yaml:"out"`

	// Plugins are the protoc output plugins; each becomes a
	// --<plugin>_out flag pointing at Out.
	Plugins []string `yaml:"plugins"`
}

// DistConfig describes the distribution artifact outputs.
type DistConfig struct {
	// Dir is the distribution output directory, relative to the workspace root.
	Dir string `yaml:"dir"`
}

// SecretConfig describes the build-time secret materialization.
type SecretConfig struct {
	// Env is the environment variable holding the secret.
	Env string `yaml:"env"`

	// Key is the constant name assigned in the generated config file.
	Key string `yaml:"key"`

	// Path is the generated config file, relative to the workspace root.
	Path string `yaml:"path"`
}

// Package declares one buildable package in the workspace.
type Package struct {
	// Name is the package name; artifacts are named <name>-<version>.fpk.
	Name string `yaml:"name"`

	// Dir is the package source directory, relative to the workspace root.
	Dir string `yaml:"dir"`
}

// TestConfig describes the optional verification step.
type TestConfig struct {
	// Command is the test command in argv form, run from the workspace root.
	Command []string `yaml:"command"`
}

// Workspace is the parsed forge.yaml manifest plus its resolved root.
type Workspace struct {
	// Name is the workspace name.
	Name string `yaml:"name"`

	// Version is the workspace version, stamped into artifact names.
	Version string `yaml:"version"`

	// Proto configures the interface-definition inputs.
	Proto ProtoConfig `yaml:"proto"`

	// Generate configures the binding generation outputs.
	Generate GenerateConfig `yaml:"generate"`

	// Dist configures the distribution outputs.
	Dist DistConfig `yaml:"dist"`

	// Secret configures build-time secret materialization.
	Secret SecretConfig `yaml:"secret"`

	// Packages are the buildable packages, assembled in declaration order.
	Packages []Package `yaml:"packages"`

	// Tests configures the optional verification step.
	Tests TestConfig `yaml:"tests"`

	// Root is the absolute workspace directory. Set by Load.
	Root string `yaml:"-"`
}

// Load reads and validates the workspace manifest in dir.
func Load(dir string) (*Workspace, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace directory: %w", err)
	}

	path := filepath.Join(absDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NewNotFoundError(
				fmt.Sprintf("no %s found in %s", FileName, absDir),
				path,
				"Run 'forge init' to create a new workspace.",
			)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var ws Workspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, ferrors.NewValidationError(
			fmt.Sprintf("invalid %s: %v", FileName, err),
			path,
			"Check the YAML syntax of the workspace manifest.",
		)
	}

	ws.Root = absDir
	ws.applyDefaults()

	if err := ws.Validate(); err != nil {
		return nil, err
	}

	return &ws, nil
}

// applyDefaults fills unset fields with their defaults.
func (w *Workspace) applyDefaults() {
	if w.Version == "" {
		w.Version = DefaultVersion
	}
	if w.Proto.Dir == "" {
		w.Proto.Dir = DefaultProtoDir
	}
	if w.Generate.Out == "" {
		w.Generate.Out = DefaultGenOut
	}
	if len(w.Generate.Plugins) == 0 {
		w.Generate.Plugins = DefaultPlugins()
	}
	if w.Dist.Dir == "" {
		w.Dist.Dir = DefaultDistDir
	}
	if w.Secret.Env == "" {
		w.Secret.Env = DefaultSecretEnv
	}
	if w.Secret.Key == "" {
		w.Secret.Key = DefaultSecretKey
	}
	if w.Secret.Path == "" {
		w.Secret.Path = DefaultSecretPath
	}
}

// Validate checks the workspace manifest for structural problems.
func (w *Workspace) Validate() error {
	if w.Name == "" {
		return ferrors.NewValidationError(
			"workspace name cannot be empty",
			filepath.Join(w.Root, FileName),
			"Set 'name' in the workspace manifest.",
		)
	}

	if len(w.Packages) == 0 {
		return ferrors.NewValidationError(
			"workspace declares no packages",
			filepath.Join(w.Root, FileName),
			"Add at least one entry under 'packages'.",
		)
	}

	seen := make(map[string]bool, len(w.Packages))
	for i, pkg := range w.Packages {
		if pkg.Name == "" {
			return ferrors.NewValidationError(
				fmt.Sprintf("packages[%d] has no name", i),
				filepath.Join(w.Root, FileName),
				"",
			)
		}
		if pkg.Dir == "" {
			return ferrors.NewValidationError(
				fmt.Sprintf("package %q has no dir", pkg.Name),
				filepath.Join(w.Root, FileName),
				"",
			)
		}
		if seen[pkg.Name] {
			return ferrors.NewValidationError(
				fmt.Sprintf("duplicate package name %q", pkg.Name),
				filepath.Join(w.Root, FileName),
				"",
			)
		}
		seen[pkg.Name] = true
	}

	for _, p := range w.Generate.Plugins {
		if !pluginNameRe.MatchString(p) {
			return ferrors.NewValidationError(
				fmt.Sprintf("invalid plugin name %q", p),
				filepath.Join(w.Root, FileName),
				"Plugin names become --<plugin>_out flags and must be lowercase identifiers.",
			)
		}
	}

	for _, rel := range []string{w.Proto.Dir, w.Generate.Out, w.Dist.Dir, w.Secret.Path} {
		if err := checkRelative(rel); err != nil {
			return ferrors.NewValidationError(
				err.Error(),
				filepath.Join(w.Root, FileName),
				"Workspace paths must stay inside the workspace directory.",
			)
		}
	}
	for _, pkg := range w.Packages {
		if err := checkRelative(pkg.Dir); err != nil {
			return ferrors.NewValidationError(
				fmt.Sprintf("package %q: %v", pkg.Name, err),
				filepath.Join(w.Root, FileName),
				"",
			)
		}
	}

	return nil
}

// checkRelative rejects absolute paths and paths escaping the workspace.
func checkRelative(rel string) error {
	if filepath.IsAbs(rel) {
		return fmt.Errorf("path %q must be relative", rel)
	}
	clean := filepath.Clean(rel)
	if clean == ".." || len(clean) >= 3 && clean[:3] == ".."+string(filepath.Separator) {
		return fmt.Errorf("path %q escapes the workspace", rel)
	}
	return nil
}

// ProtoDir returns the absolute interface-definition directory.
func (w *Workspace) ProtoDir() string {
	return filepath.Join(w.Root, w.Proto.Dir)
}

// GenDir returns the absolute generated-bindings directory.
func (w *Workspace) GenDir() string {
	return filepath.Join(w.Root, w.Generate.Out)
}

// DistDir returns the absolute distribution directory.
func (w *Workspace) DistDir() string {
	return filepath.Join(w.Root, w.Dist.Dir)
}

// SecretPath returns the absolute generated config file path.
func (w *Workspace) SecretPath() string {
	return filepath.Join(w.Root, w.Secret.Path)
}

// PackageDir returns the absolute source directory of a package.
func (w *Workspace) PackageDir(pkg Package) string {
	return filepath.Join(w.Root, pkg.Dir)
}

// HasTests reports whether a test command is configured.
func (w *Workspace) HasTests() bool {
	return len(w.Tests.Command) > 0
}
