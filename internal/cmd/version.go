package cmd

import (
	"github.com/spf13/cobra"

	"github.com/forgekit/cli/internal/output"
	"github.com/forgekit/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show forge CLI version information.

Displays:
  - forge CLI version, commit, and build date
  - protobuf SDK version (embedded in CLI)
  - protoc binary version and compatibility`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.GetInfo()
	protocInfo := version.DetectProtocBinary(cmd.Context(), GetConfig().Protoc.Path)

	output.Println(version.FullVersionString(info, protocInfo))
	return nil
}
