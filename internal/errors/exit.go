package errors

import "errors"

// Exit codes reported to the invoking environment (e.g., a CI runner).
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates workspace or manifest validation failed.
	ExitValidationError = 2

	// ExitGenerateError indicates protobuf binding generation failed.
	ExitGenerateError = 3

	// ExitAssembleError indicates package assembly failed.
	ExitAssembleError = 4

	// ExitNotFound indicates a workspace, package, or file was not found.
	ExitNotFound = 5

	// ExitVersionMismatch indicates the protoc binary version is incompatible.
	ExitVersionMismatch = 6

	// ExitTestsFailed indicates the verification step failed after assembly.
	ExitTestsFailed = 7
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitGenerateError:
		return "Generation Error"
	case ExitAssembleError:
		return "Assembly Error"
	case ExitNotFound:
		return "Not Found"
	case ExitVersionMismatch:
		return "Version Mismatch"
	case ExitTestsFailed:
		return "Tests Failed"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrGenerate):
		return ExitGenerateError
	case errors.Is(err, ErrAssemble):
		return ExitAssembleError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrVersion):
		return ExitVersionMismatch
	case errors.Is(err, ErrTests):
		return ExitTestsFailed
	default:
		return ExitGeneralError
	}
}
