package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	ferrors "github.com/forgekit/cli/internal/errors"
	"github.com/forgekit/cli/internal/workspace"
)

// runTests executes the workspace test command from the workspace root
// with inherited stdio. Any non-zero exit is fatal to the run.
func runTests(ctx context.Context, ws *workspace.Workspace) error {
	cmd := exec.CommandContext(ctx, ws.Tests.Command[0], ws.Tests.Command[1:]...)
	cmd.Dir = ws.Root
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: test command exited with code %d",
				ferrors.ErrTests, exitErr.ExitCode())
		}
		return fmt.Errorf("%w: running test command: %v", ferrors.ErrTests, err)
	}

	return nil
}
