// Package protoc wraps calls to the external protoc binary.
package protoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/forgekit/cli/internal/version"
)

var (
	// ErrProtocNotFound is returned when the protoc binary is not found.
	ErrProtocNotFound = errors.New("protoc binary not found")

	// ErrProtocVersionMismatch is returned when the protoc binary version
	// is below the supported minimum.
	ErrProtocVersionMismatch = errors.New("protoc binary version mismatch")

	// ErrNoProtoFiles is returned when the input directory holds no .proto files.
	ErrNoProtoFiles = errors.New("no .proto files found")
)

// DescriptorFileName is the descriptor set emitted alongside the bindings.
const DescriptorFileName = "descriptor.pb"

// Binary wraps calls to the external protoc binary.
type Binary struct {
	// Path is the path to the protoc binary. If empty, "protoc" is used
	// from PATH.
	Path string

	// Stderr for protoc diagnostics. If nil, os.Stderr is used.
	Stderr io.Writer
}

// NewBinary creates a new Binary wrapper. path may be empty to use
// "protoc" from PATH.
func NewBinary(path string) *Binary {
	if path == "" {
		path = "protoc"
	}
	return &Binary{
		Path:   path,
		Stderr: os.Stderr,
	}
}

// CheckVersion verifies the protoc binary exists and meets the minimum
// supported version.
func (b *Binary) CheckVersion(ctx context.Context) error {
	info := version.DetectProtocBinary(ctx, b.Path)

	if !info.Found {
		return ErrProtocNotFound
	}

	if !info.Compatible {
		return fmt.Errorf("%w: %s (binary version %s)",
			ErrProtocVersionMismatch, info.Message, info.Version)
	}

	return nil
}

// GenerateOptions configures one protoc invocation.
type GenerateOptions struct {
	// ProtoDir is the directory of .proto input files.
	ProtoDir string

	// OutDir is the shared output directory for all plugins.
	OutDir string

	// Plugins are protoc output plugins; each becomes --<plugin>_out=OutDir.
	Plugins []string
}

// Generate compiles every .proto file under opts.ProtoDir in a single
// protoc invocation, emitting plugin outputs and a FileDescriptorSet into
// opts.OutDir. Returns the compiled .proto files relative to ProtoDir.
func (b *Binary) Generate(ctx context.Context, opts GenerateOptions) ([]string, error) {
	files, err := ListProtoFiles(opts.ProtoDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", opts.OutDir, err)
	}

	args := []string{"-I", opts.ProtoDir}
	for _, plugin := range opts.Plugins {
		args = append(args, fmt.Sprintf("--%s_out=%s", plugin, opts.OutDir))
	}
	args = append(args,
		"--descriptor_set_out="+filepath.Join(opts.OutDir, DescriptorFileName),
		"--include_imports",
	)
	for _, f := range files {
		args = append(args, filepath.Join(opts.ProtoDir, f))
	}

	if err := b.run(ctx, args...); err != nil {
		return nil, err
	}

	return files, nil
}

// run executes protoc with the given arguments.
func (b *Binary) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, b.Path, args...)

	var diag bytes.Buffer
	cmd.Stdout = b.stderr()
	cmd.Stderr = io.MultiWriter(b.stderr(), &diag)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("protoc failed with exit code %d: %s",
				exitErr.ExitCode(), strings.TrimSpace(diag.String()))
		}
		return fmt.Errorf("protoc: %w", err)
	}

	return nil
}

func (b *Binary) stderr() io.Writer {
	if b.Stderr != nil {
		return b.Stderr
	}
	return os.Stderr
}

// ListProtoFiles returns all .proto files under dir, relative to dir,
// sorted for a stable protoc argument order.
func ListProtoFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("proto directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("proto path %s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".proto") {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoProtoFiles, dir)
	}

	sort.Strings(files)
	return files, nil
}
