package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/forgekit/cli/internal/config"
	ferrors "github.com/forgekit/cli/internal/errors"
	"github.com/forgekit/cli/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the forge CLI.`,
	}

	cmd.AddCommand(NewConfigInitCmd())
	cmd.AddCommand(NewConfigVetCmd())

	return cmd
}

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the forge CLI configuration.

Creates ~/.forge/config.yaml populated with the default settings:
protoc binary path, log timestamps, and dist cleaning behavior.

Examples:
  # Initialize configuration
  forge config init

  # Overwrite existing configuration
  forge config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(force bool) error {
	configFile, err := config.GetConfigFile()
	if err != nil {
		return ferrors.Wrap(ferrors.ErrNotFound, "could not determine home directory")
	}

	if _, err := os.Stat(configFile); err == nil && !force {
		return &ferrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: configFile,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    ferrors.ErrValidation,
		}
	}

	if err := config.EnsureHomeDir(); err != nil {
		return fmt.Errorf("creating forge home directory: %w", err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configFile, err)
	}

	output.Println("Configuration initialized at " + configFile)
	output.Println("")
	output.Println("Validate with: forge config vet")

	return nil
}

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the forge CLI configuration file.

Checks that the config file exists at the resolved path and parses as
valid YAML.

The config path is resolved using precedence:
  --config flag > FORGE_CONFIG env > ~/.forge/config.yaml`,
		RunE: runConfigVet,
	}
}

func runConfigVet(_ *cobra.Command, _ []string) error {
	configFile := configFlag
	if configFile == "" {
		var err error
		configFile, err = config.GetConfigFile()
		if err != nil {
			return ferrors.Wrap(ferrors.ErrNotFound, "could not resolve config path")
		}
	}

	exists, err := config.ConfigFileExists(configFile)
	if err != nil {
		return err
	}
	if !exists {
		return &ferrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: configFile,
			Hint:     "Run 'forge config init' to create default configuration.",
			Cause:    ferrors.ErrNotFound,
		}
	}

	if _, err := config.NewLoader().LoadWithDefaults(configFile); err != nil {
		return fmt.Errorf("%w: %v", ferrors.ErrValidation, err)
	}

	output.Println("Configuration is valid: " + configFile)
	return nil
}
