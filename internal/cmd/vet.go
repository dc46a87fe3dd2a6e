package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	ferrors "github.com/forgekit/cli/internal/errors"
	"github.com/forgekit/cli/internal/manifest"
	"github.com/forgekit/cli/internal/output"
	"github.com/forgekit/cli/internal/protoc"
	"github.com/forgekit/cli/internal/workspace"
)

// NewVetCmd creates the vet command.
func NewVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet [path]",
		Short: "Validate the workspace without building",
		Long: `Validate a tool workspace without building it.

Checks the workspace manifest, the declared package directories, the
interface definitions, and the tool manifest against its schema.

Arguments:
  path    Path to workspace directory (default: current directory)`,
		Args: cobra.MaximumNArgs(1),
		RunE: runVet,
	}
}

func runVet(_ *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	// Load performs structural validation of forge.yaml.
	ws, err := workspace.Load(dir)
	if err != nil {
		return err
	}

	checks := 1
	output.Debug("workspace manifest valid", "name", ws.Name)

	if err := checkStructure(ws); err != nil {
		return err
	}
	checks += len(ws.Packages)

	// Interface definitions must exist when generation is configured.
	protoFiles, err := protoc.ListProtoFiles(ws.ProtoDir())
	if err != nil {
		if errors.Is(err, protoc.ErrNoProtoFiles) || errors.Is(err, os.ErrNotExist) {
			return ferrors.NewValidationError(
				fmt.Sprintf("no interface definitions found in %s", ws.Proto.Dir),
				ws.ProtoDir(),
				"Add .proto files, or build with --skip-generate.",
			)
		}
		return err
	}
	checks++

	// The tool manifest must pass schema validation when present.
	manifestPath := filepath.Join(ws.Root, manifest.FileName)
	if _, err := os.Stat(manifestPath); err == nil {
		if _, err := manifest.Load(manifestPath); err != nil {
			return err
		}
		checks++
	} else {
		output.Warn("no tool manifest found", "path", manifestPath)
	}

	output.Println(fmt.Sprintf("%s: %s %s",
		output.StyleNoun.Render(ws.Name),
		output.StatusStyle(output.StatusOK).Render("valid"),
		output.StyleDim.Render(fmt.Sprintf("(%d checks, %d proto files)", checks, len(protoFiles))),
	))

	return nil
}

// checkStructure verifies that every declared package directory exists.
// Shared by vet and the build --check pre-flight.
func checkStructure(ws *workspace.Workspace) error {
	for _, pkg := range ws.Packages {
		info, err := os.Stat(ws.PackageDir(pkg))
		if err != nil || !info.IsDir() {
			return ferrors.NewValidationError(
				fmt.Sprintf("package %q directory %s does not exist", pkg.Name, pkg.Dir),
				filepath.Join(ws.Root, workspace.FileName),
				"Create the directory or fix the 'dir' entry.",
			)
		}
	}
	return nil
}
