// Package version provides version information for the forge CLI.
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// ProtobufSDKVersion is the version of the protobuf Go SDK this CLI links.
// Generated descriptors are verified with this SDK.
const ProtobufSDKVersion = "v1.36.11"

// Minimum protoc version supported by the generation step.
const (
	MinProtocMajor = 3
	MinProtocMinor = 20
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// ProtobufSDKVersion is the protobuf SDK version (embedded at build time).
	ProtobufSDKVersion string `json:"protobufSDKVersion"`
}

// GetInfo returns the current version information.
func GetInfo() Info {
	return Info{
		Version:            Version,
		GitCommit:          GitCommit,
		BuildDate:          BuildDate,
		GoVersion:          runtime.Version(),
		ProtobufSDKVersion: ProtobufSDKVersion,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("forge:\n  Version:  %s\n  Build ID: %s/%s\n\nprotobuf:\n  SDK Version: %s",
		i.Version, i.BuildDate, i.GitCommit, i.ProtobufSDKVersion)
}

// ProtocVersionCompatible checks if the protoc binary version meets the
// minimum supported version.
func ProtocVersionCompatible(binaryVersion string) bool {
	major, minor, ok := splitVersion(binaryVersion)
	if !ok {
		return false
	}

	if major != MinProtocMajor {
		return major > MinProtocMajor
	}
	return minor >= MinProtocMinor
}

// CompatibilityMessage returns a message explaining version compatibility.
func CompatibilityMessage(binaryVersion string) string {
	if ProtocVersionCompatible(binaryVersion) {
		return "compatible"
	}

	if _, _, ok := splitVersion(binaryVersion); !ok {
		return "incompatible - invalid version format"
	}

	return fmt.Sprintf("incompatible - protoc %d.%d or newer required", MinProtocMajor, MinProtocMinor)
}

// splitVersion extracts MAJOR and MINOR from a version string like
// "25.1" or "v3.21.12".
func splitVersion(version string) (major, minor int, ok bool) {
	version = strings.TrimPrefix(version, "v")

	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return 0, 0, false
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}

	return major, minor, true
}

// FullVersionString returns complete version information including the
// protoc binary.
func FullVersionString(info Info, protocInfo ProtocBinaryInfo) string {
	return fmt.Sprintf("forge:\n  Version:  %s\n  Build ID: %s/%s\n\nprotobuf:\n  SDK Version:    %s\n%s",
		info.Version, info.BuildDate, info.GitCommit, info.ProtobufSDKVersion, protocInfo.String())
}
