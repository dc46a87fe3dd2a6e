// Package pipeline implements the build orchestrator.
//
// A run is a fixed, strictly sequential four-step procedure: materialize
// the generated secret config, generate protobuf bindings, assemble
// distribution archives, and optionally run the test suite. The first
// failing step aborts the run; there are no retries and no partial-success
// reporting beyond the steps already recorded.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	ferrors "github.com/forgekit/cli/internal/errors"
	"github.com/forgekit/cli/internal/output"
	"github.com/forgekit/cli/internal/protoc"
	"github.com/forgekit/cli/internal/workspace"
)

// Options configures one pipeline run.
type Options struct {
	// RunTests enables the verification step after assembly.
	RunTests bool

	// Clean clears the dist directory before assembly.
	Clean bool

	// SkipGenerate skips the binding generation step.
	SkipGenerate bool
}

// StepResult records the outcome of one executed step.
type StepResult struct {
	// Name is the step name.
	Name string

	// Skipped indicates the step was configured away.
	Skipped bool

	// Duration is the step wall time.
	Duration time.Duration

	// Err is the step failure, if any.
	Err error
}

// Result is the outcome of a pipeline run.
type Result struct {
	// Steps are the executed steps, in order. On failure the last entry
	// carries the error; later steps never ran.
	Steps []StepResult

	// Artifacts are the assembled distribution archives.
	Artifacts []Artifact

	// Descriptor summarizes the verified descriptor set, when generation ran.
	Descriptor *protoc.DescriptorInfo

	// Duration is the total run wall time.
	Duration time.Duration
}

// Pipeline runs the build procedure for a workspace.
type Pipeline interface {
	// Run executes the pipeline. On step failure it returns the partial
	// Result alongside a *StepError wrapping the cause.
	Run(ctx context.Context, ws *workspace.Workspace, opts Options) (*Result, error)
}

// pipeline is the default Pipeline implementation.
type pipeline struct {
	protoc *protoc.Binary
	env    func(string) string
}

// New creates a Pipeline. protocBinary may be nil to use "protoc" from
// PATH; env may be nil to read the process environment.
func New(protocBinary *protoc.Binary, env func(string) string) Pipeline {
	if protocBinary == nil {
		protocBinary = protoc.NewBinary("")
	}
	if env == nil {
		env = os.Getenv
	}
	return &pipeline{
		protoc: protocBinary,
		env:    env,
	}
}

// Run executes the pipeline steps strictly in order.
func (p *pipeline) Run(ctx context.Context, ws *workspace.Workspace, opts Options) (*Result, error) {
	start := time.Now()
	result := &Result{}

	steps := []struct {
		name string
		run  func(context.Context, *workspace.Workspace, Options, *Result) (bool, error)
	}{
		{StepMaterialize, p.materialize},
		{StepGenerate, p.generate},
		{StepAssemble, p.assemble},
		{StepVerify, p.verify},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		stepStart := time.Now()
		skipped, err := step.run(ctx, ws, opts, result)

		result.Steps = append(result.Steps, StepResult{
			Name:     step.name,
			Skipped:  skipped,
			Duration: time.Since(stepStart),
			Err:      err,
		})

		if err != nil {
			result.Duration = time.Since(start)
			return result, &StepError{Step: step.name, Err: err}
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// materialize writes the generated secret config file.
func (p *pipeline) materialize(_ context.Context, ws *workspace.Workspace, _ Options, _ *Result) (bool, error) {
	value := p.env(ws.Secret.Env)
	if value == "" {
		output.Debug("secret not set, writing null sentinel", "env", ws.Secret.Env)
	}

	if err := Materialize(ws.SecretPath(), ws.Secret.Key, value); err != nil {
		return false, err
	}

	output.Debug("materialized config", "path", ws.SecretPath(), "key", ws.Secret.Key)
	return false, nil
}

// generate compiles the interface definitions and verifies the emitted
// descriptor set.
func (p *pipeline) generate(ctx context.Context, ws *workspace.Workspace, opts Options, result *Result) (bool, error) {
	if opts.SkipGenerate {
		output.Debug("binding generation skipped")
		return true, nil
	}

	if err := p.protoc.CheckVersion(ctx); err != nil {
		if errors.Is(err, protoc.ErrProtocNotFound) {
			return false, fmt.Errorf("%w: protoc binary not found in PATH", ferrors.ErrNotFound)
		}
		return false, fmt.Errorf("%w: %v", ferrors.ErrVersion, err)
	}

	files, err := p.protoc.Generate(ctx, protoc.GenerateOptions{
		ProtoDir: ws.ProtoDir(),
		OutDir:   ws.GenDir(),
		Plugins:  ws.Generate.Plugins,
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ferrors.ErrGenerate, err)
	}

	info, err := protoc.VerifyDescriptorSet(ws.GenDir(), files)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ferrors.ErrGenerate, err)
	}

	result.Descriptor = info
	output.Debug("generated bindings",
		"protos", len(files),
		"messages", info.Messages,
		"services", info.Services,
	)
	return false, nil
}

// assemble builds the distribution archive for every declared package.
func (p *pipeline) assemble(_ context.Context, ws *workspace.Workspace, opts Options, result *Result) (bool, error) {
	if opts.Clean {
		if err := cleanDist(ws.DistDir()); err != nil {
			return false, fmt.Errorf("%w: %v", ferrors.ErrAssemble, err)
		}
	}

	for _, pkg := range ws.Packages {
		artifact, err := assemblePackage(ws, pkg)
		if err != nil {
			return false, err
		}

		result.Artifacts = append(result.Artifacts, *artifact)
		output.Debug("assembled package",
			"package", pkg.Name,
			"files", artifact.Files,
			"size", artifact.Size,
		)
	}

	return false, nil
}

// verify runs the configured test command. Artifacts already exist on disk
// at this point; a test failure still fails the run (non-zero exit) but
// does not remove them.
func (p *pipeline) verify(ctx context.Context, ws *workspace.Workspace, opts Options, _ *Result) (bool, error) {
	if !opts.RunTests {
		return true, nil
	}
	if !ws.HasTests() {
		output.Warn("tests requested but no test command configured", "workspace", ws.Name)
		return true, nil
	}

	return false, runTests(ctx, ws)
}
