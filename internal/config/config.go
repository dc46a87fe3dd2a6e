// Package config provides user-level configuration loading for the forge CLI.
package config

// ProtocConfig contains protoc-related settings.
type ProtocConfig struct {
	// Path is the protoc binary to invoke.
	// Env: FORGE_PROTOC_PATH, Default: "protoc" from PATH.
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// BuildConfig contains build-related settings.
type BuildConfig struct {
	// Clean controls whether the dist directory is cleared before each run.
	// Default: true.
	Clean *bool `mapstructure:"clean" yaml:"clean,omitempty"`
}

// Config represents the forge CLI configuration.
// Loaded from ~/.forge/config.yaml with FORGE_* environment overrides.
type Config struct {
	// Protoc contains protoc binary settings.
	Protoc ProtocConfig `mapstructure:"protoc" yaml:"protoc,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`

	// Build contains build-related settings.
	Build BuildConfig `mapstructure:"build" yaml:"build,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `forge config init` to generate the initial config file.
func DefaultConfig() *Config {
	clean := true
	timestamps := false
	return &Config{
		Protoc: ProtocConfig{Path: "protoc"},
		Log:    LogConfig{Timestamps: &timestamps},
		Build:  BuildConfig{Clean: &clean},
	}
}

// WithDefaults returns a copy of the config with defaults applied to
// unset fields.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.Protoc.Path == "" {
		out.Protoc.Path = "protoc"
	}
	if out.Build.Clean == nil {
		clean := true
		out.Build.Clean = &clean
	}
	return &out
}

// CleanDist reports whether the dist directory should be cleared before
// each build run.
func (c *Config) CleanDist() bool {
	if c.Build.Clean == nil {
		return true
	}
	return *c.Build.Clean
}
