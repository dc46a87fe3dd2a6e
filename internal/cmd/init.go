package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	ferrors "github.com/forgekit/cli/internal/errors"
	"github.com/forgekit/cli/internal/manifest"
	"github.com/forgekit/cli/internal/output"
	"github.com/forgekit/cli/internal/templates"
	"github.com/forgekit/cli/internal/workspace"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	var (
		initTemplate    string
		initDir         string
		initDescription string
		initForce       bool
	)

	cmd := &cobra.Command{
		Use:   "init <tool-name>",
		Short: "Create a new tool workspace from a template",
		Long: `Create a new tool workspace from a template.

Templates:
  tool     Full workspace with package source and tests (default)
  minimal  Manifest and interface definitions only

Examples:
  # Create a workspace with the default template
  forge init my-tool

  # Create a minimal workspace
  forge init my-tool --template minimal

  # Create the workspace in a specific directory
  forge init my-tool --dir ./tools/my-tool`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0], initTemplate, initDir, initDescription, initForce)
		},
	}

	cmd.Flags().StringVarP(&initTemplate, "template", "t", templates.DefaultTemplateName,
		fmt.Sprintf("Template to use (%s)", strings.Join(templates.Names(), ", ")))
	cmd.Flags().StringVarP(&initDir, "dir", "d", "",
		"Directory to create the workspace in (defaults to tool name)")
	cmd.Flags().StringVar(&initDescription, "description", "",
		"One-line tool description for the manifest")
	cmd.Flags().BoolVar(&initForce, "force", false,
		"Overwrite files in a non-empty directory")

	return cmd
}

func runInit(name, templateName, dir, description string, force bool) error {
	targetDir := dir
	if targetDir == "" {
		targetDir = name
	}

	if _, err := os.Stat(targetDir); err == nil && !force {
		return &ferrors.DetailError{
			Type:     "validation failed",
			Message:  fmt.Sprintf("directory already exists: %s", targetDir),
			Location: targetDir,
			Hint:     "Choose a different directory or pass --force.",
			Cause:    ferrors.ErrValidation,
		}
	}

	existedBefore := false
	if _, err := os.Stat(targetDir); err == nil {
		existedBefore = true
	}

	gen := templates.NewGenerator(templates.GenerateOptions{
		TargetDir:    targetDir,
		TemplateName: templateName,
		Name:         name,
		Description:  description,
		Force:        force,
	})

	result, err := gen.Generate()
	if err != nil {
		// Don't leave a half-rendered directory behind.
		if !existedBefore {
			_ = os.RemoveAll(targetDir)
		}
		return fmt.Errorf("%w: %v", ferrors.ErrValidation, err)
	}

	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("getting absolute path: %w", err)
	}

	output.Println(fmt.Sprintf("Created workspace '%s' in %s\n", result.Data.Name, absDir))

	files := make(map[string]string, len(result.Files))
	for _, f := range result.Files {
		files[f] = fileDescription(f)
	}
	output.Print(output.RenderFileTree(filepath.Base(targetDir), files))

	return nil
}

// fileDescription returns a short description for a generated file.
func fileDescription(path string) string {
	switch path {
	case workspace.FileName:
		return "Workspace manifest"
	case manifest.FileName:
		return "Tool manifest"
	case "README.md":
		return "Getting started"
	}

	switch {
	case strings.HasPrefix(path, "proto/"):
		return "Interface definitions"
	case strings.HasPrefix(path, "packages/"):
		return "Package source"
	case strings.HasPrefix(path, "tests/"):
		return "Test suite"
	}

	return ""
}
