package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	ferrors "github.com/forgekit/cli/internal/errors"
	"github.com/forgekit/cli/internal/manifest"
	"github.com/forgekit/cli/internal/output"
	"github.com/forgekit/cli/internal/workspace"
)

// NewTidyCmd creates the tidy command.
func NewTidyCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "tidy [path]",
		Short: "Normalize the tool manifest",
		Long: `Normalize the tool manifest in a workspace.

Rewrites manifest.json in canonical form: sorted keys, 4-space indent,
sorted package list, and omitted optional fields filled in. Shows a diff
of the changes before writing.

Arguments:
  path    Path to workspace directory (default: current directory)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTidy(args, checkOnly)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false,
		"Exit non-zero if the manifest is not tidy, without writing")

	return cmd
}

func runTidy(args []string, checkOnly bool) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	ws, err := workspace.Load(dir)
	if err != nil {
		return err
	}

	path := filepath.Join(ws.Root, manifest.FileName)
	before, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ferrors.NewNotFoundError(
				fmt.Sprintf("%s not found", manifest.FileName),
				path,
				"Run 'forge init' to create a new workspace.",
			)
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	after, err := manifest.Normalize(before, path)
	if err != nil {
		return err
	}

	if bytes.Equal(before, after) {
		output.Println(fmt.Sprintf("%s is already tidy", manifest.FileName))
		return nil
	}

	diff, err := output.DiffDocuments(manifest.FileName, before, manifest.FileName+" (tidy)", after)
	if err != nil {
		return err
	}
	if diff != "" {
		output.Details(diff)
	}

	if checkOnly {
		return fmt.Errorf("%w: %s is not tidy", ferrors.ErrValidation, manifest.FileName)
	}

	if err := os.WriteFile(path, after, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	output.Info("normalized manifest", "path", path)
	return nil
}
