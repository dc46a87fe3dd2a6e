package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
)

// protocVersionRegex matches protoc version output like "libprotoc 25.1"
// or "libprotoc 3.21.12".
var protocVersionRegex = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9.]+)?`)

// ProtocBinaryInfo contains protoc binary version information.
type ProtocBinaryInfo struct {
	// Version is the protoc binary version.
	Version string `json:"version"`

	// Path is the path to the protoc binary.
	Path string `json:"path"`

	// Compatible indicates if the version meets the supported minimum.
	Compatible bool `json:"compatible"`

	// Found indicates if the protoc binary was found.
	Found bool `json:"found"`

	// Message provides additional information about compatibility.
	Message string `json:"message,omitempty"`
}

// String returns a human-readable protoc binary info string.
func (p ProtocBinaryInfo) String() string {
	if !p.Found {
		return "  Binary Version: not found\n  Binary Path:    -"
	}

	compatStr := "compatible"
	if !p.Compatible {
		compatStr = p.Message
	}

	return fmt.Sprintf("  Binary Version: %s (%s)\n  Binary Path:    %s",
		p.Version, compatStr, p.Path)
}

// DetectProtocBinary finds and checks the protoc binary installation.
// name is the binary name or path to probe; empty means "protoc" from PATH.
func DetectProtocBinary(ctx context.Context, name string) ProtocBinaryInfo {
	if name == "" {
		name = "protoc"
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return ProtocBinaryInfo{
			Found:      false,
			Compatible: false,
			Message:    "protoc binary not found in PATH",
		}
	}

	ver, err := getProtocVersion(ctx, path)
	if err != nil {
		return ProtocBinaryInfo{
			Path:       path,
			Found:      true,
			Compatible: false,
			Message:    "failed to get protoc version: " + err.Error(),
		}
	}

	return ProtocBinaryInfo{
		Version:    ver,
		Path:       path,
		Found:      true,
		Compatible: ProtocVersionCompatible(ver),
		Message:    CompatibilityMessage(ver),
	}
}

// getProtocVersion executes 'protoc --version' and extracts the version string.
func getProtocVersion(ctx context.Context, protocPath string) (string, error) {
	cmd := exec.CommandContext(ctx, protocPath, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return extractVersion(out.String())
}

// extractVersion pulls the version number out of protoc version output.
func extractVersion(output string) (string, error) {
	match := protocVersionRegex.FindString(output)
	if match == "" {
		return "", fmt.Errorf("no version found in output: %q", output)
	}
	return match, nil
}
