package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgekit/cli/internal/output"
	"github.com/forgekit/cli/internal/pipeline"
	"github.com/forgekit/cli/internal/protoc"
	"github.com/forgekit/cli/internal/workspace"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	var (
		withTests    bool
		skipGenerate bool
		noClean      bool
		noCheck      bool
		watch        bool
	)

	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Build the workspace into distribution archives",
		Long: `Build a tool workspace.

The build runs a fixed sequence: materialize the generated secret config,
compile the protobuf interface definitions, and assemble one distribution
archive per declared package. The first failing step aborts the build.

Arguments:
  path    Path to workspace directory (default: current directory)

Examples:
  # Build the workspace in the current directory
  forge build

  # Build and run the test suite after assembly
  forge build --with-tests

  # Rebuild on every source change
  forge build --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, buildOptions{
				withTests:    withTests,
				skipGenerate: skipGenerate,
				noClean:      noClean,
				noCheck:      noCheck,
				watch:        watch,
			})
		},
	}

	cmd.Flags().BoolVar(&withTests, "with-tests", false,
		"Run the workspace test suite after assembly")
	cmd.Flags().BoolVar(&skipGenerate, "skip-generate", false,
		"Skip protobuf binding generation")
	cmd.Flags().BoolVar(&noClean, "no-clean", false,
		"Keep existing artifacts in the dist directory")
	cmd.Flags().BoolVar(&noCheck, "no-check", false,
		"Skip workspace structure validation before building")
	cmd.Flags().BoolVar(&watch, "watch", false,
		"Watch workspace sources and rebuild on change")

	return cmd
}

type buildOptions struct {
	withTests    bool
	skipGenerate bool
	noClean      bool
	noCheck      bool
	watch        bool
}

// runBuild executes the build command.
func runBuild(cmd *cobra.Command, args []string, opts buildOptions) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	ws, err := workspace.Load(dir)
	if err != nil {
		return err
	}

	if !opts.noCheck {
		if err := checkStructure(ws); err != nil {
			return err
		}
	}

	clean := GetConfig().CleanDist()
	if cmd.Flags().Changed("no-clean") {
		clean = !opts.noClean
	}

	p := pipeline.New(protoc.NewBinary(GetConfig().Protoc.Path), nil)
	pipelineOpts := pipeline.Options{
		RunTests:     opts.withTests,
		Clean:        clean,
		SkipGenerate: opts.skipGenerate,
	}

	if opts.watch {
		return runWatch(ws, p, pipelineOpts)
	}

	return runOnce(context.Background(), ws, p, pipelineOpts)
}

// runOnce runs a single build and prints the result.
func runOnce(ctx context.Context, ws *workspace.Workspace, p pipeline.Pipeline, opts pipeline.Options) error {
	var result *pipeline.Result
	var runErr error

	// The verify step streams test output, so the spinner only covers the
	// build when tests are off.
	if opts.RunTests || verboseFlag {
		result, runErr = p.Run(ctx, ws, opts)
	} else {
		spinErr := output.RunWithSpinner(ctx, func(ctx context.Context) error {
			result, runErr = p.Run(ctx, ws, opts)
			return runErr
		}, output.WithTitle(fmt.Sprintf("Building %s...", ws.Name)))
		if runErr == nil {
			runErr = spinErr
		}
	}

	if result != nil {
		printResult(ws, result, runErr)
	}
	return runErr
}

// runWatch runs an initial build, then rebuilds on source changes until
// interrupted.
func runWatch(ws *workspace.Workspace, p pipeline.Pipeline, opts pipeline.Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A failing first build is not fatal in watch mode; the point is to
	// keep rebuilding while the user edits.
	if err := runOnce(ctx, ws, p, opts); err != nil {
		output.Error("build failed", "error", err)
	}

	err := pipeline.Watch(ctx, ws, func(ctx context.Context) error {
		return runOnce(ctx, ws, p, opts)
	})
	if err == context.Canceled {
		return nil
	}
	return err
}

// printResult prints the step table, assembled artifacts, and summary line.
func printResult(ws *workspace.Workspace, result *pipeline.Result, runErr error) {
	output.Println("")
	for _, step := range result.Steps {
		status := output.StatusOK
		switch {
		case step.Err != nil:
			status = output.StatusFailed
		case step.Skipped:
			status = output.StatusSkipped
		}

		output.Println(fmt.Sprintf("  %-12s %s %s",
			step.Name,
			output.StatusStyle(status).Render(status),
			output.StyleDim.Render(step.Duration.Round(time.Millisecond).String()),
		))
	}

	if len(result.Artifacts) > 0 {
		output.Println("")
		for _, a := range result.Artifacts {
			output.Println(fmt.Sprintf("  %s %s %s",
				output.StyleNoun.Render(filepath.Base(a.Path)),
				output.StyleDim.Render(fmt.Sprintf("(%d files)", a.Files)),
				output.FormatSize(a.Size),
			))
		}
	}

	if runErr == nil {
		output.Println("")
		output.Println(output.StyleSummary.Render(
			fmt.Sprintf("Built %s in %s", ws.Name, result.Duration.Round(time.Millisecond)),
		))
	}
}
