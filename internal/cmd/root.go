// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/forgekit/cli/internal/config"
	"github.com/forgekit/cli/internal/output"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	forgeConfig *config.Config
)

// NewRootCmd creates the root command for the forge CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "forge",
		Short:         "Tool workspace build orchestrator",
		Long:          `forge builds tool workspaces: it materializes generated config, compiles protobuf interface definitions, and assembles distribution archives.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: FORGE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVetCmd())
	rootCmd.AddCommand(NewTidyCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	loader := config.NewLoader()
	loaded, err := loader.LoadWithDefaults(configFlag)
	if err != nil {
		return err
	}
	forgeConfig = loaded

	// Timestamps: flag (if explicitly set) > config > default (false)
	timestamps := timestampsFlag
	if !cmd.Flags().Changed("timestamps") && forgeConfig.Log.Timestamps != nil {
		timestamps = *forgeConfig.Log.Timestamps
	}

	output.SetupLogging(verboseFlag)
	output.Logger.SetReportTimestamp(timestamps)

	output.Debug("initialized CLI",
		"config", configFlag,
		"protoc", forgeConfig.Protoc.Path,
	)

	return nil
}

// GetConfig returns the loaded forge configuration. Falls back to defaults
// when a command runs without the root command's PersistentPreRunE.
func GetConfig() *config.Config {
	if forgeConfig == nil {
		return config.DefaultConfig()
	}
	return forgeConfig
}
