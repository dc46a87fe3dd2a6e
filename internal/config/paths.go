package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paths contains standard filesystem paths for forge.
type Paths struct {
	// ConfigFile is the path to the config file (~/.forge/config.yaml).
	ConfigFile string

	// HomeDir is the forge home directory (~/.forge).
	HomeDir string
}

// DefaultPaths returns the default paths for forge.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	forgeHome := filepath.Join(homeDir, ".forge")

	return &Paths{
		ConfigFile: filepath.Join(forgeHome, "config.yaml"),
		HomeDir:    forgeHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If FORGE_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("FORGE_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// EnsureHomeDir creates the forge home directory if it doesn't exist.
func EnsureHomeDir() error {
	paths, err := DefaultPaths()
	if err != nil {
		return err
	}

	return os.MkdirAll(paths.HomeDir, 0o755)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	if path == "~" {
		return homeDir, nil
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~user form is not supported
	return path, nil
}
