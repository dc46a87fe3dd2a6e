package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetailError_Error(t *testing.T) {
	err := &DetailError{
		Type:     "validation failed",
		Message:  "manifest.name cannot be empty",
		Location: "manifest.json",
		Hint:     "Run 'forge init' to regenerate the manifest.",
		Cause:    ErrValidation,
	}

	out := err.Error()
	assert.Contains(t, out, "Error: validation failed")
	assert.Contains(t, out, "Location: manifest.json")
	assert.Contains(t, out, "manifest.name cannot be empty")
	assert.Contains(t, out, "Hint: Run 'forge init'")
}

func TestDetailError_Unwrap(t *testing.T) {
	err := NewValidationError("bad manifest", "manifest.json", "")
	assert.ErrorIs(t, err, ErrValidation)

	err = NewNotFoundError("workspace missing", "forge.yaml", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"validation", fmt.Errorf("vet: %w", ErrValidation), ExitValidationError},
		{"generate", fmt.Errorf("protoc: %w", ErrGenerate), ExitGenerateError},
		{"assemble", fmt.Errorf("zip: %w", ErrAssemble), ExitAssembleError},
		{"not found", Wrap(ErrNotFound, "no forge.yaml"), ExitNotFound},
		{"version", Wrap(ErrVersion, "protoc too old"), ExitVersionMismatch},
		{"tests", Wrap(ErrTests, "2 failures"), ExitTestsFailed},
		{"wrapped twice", fmt.Errorf("build: %w", Wrap(ErrTests, "1 failure")), ExitTestsFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "Tests Failed", ExitCodeName(ExitTestsFailed))
	assert.Equal(t, "Unknown", ExitCodeName(99))
}
