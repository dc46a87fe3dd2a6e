package output

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithSpinner_ReturnsActionError(t *testing.T) {
	wantErr := errors.New("boom")

	err := RunWithSpinner(context.Background(), func(context.Context) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
}

func TestRunWithSpinner_WaitsForActionAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The action winds down after observing cancellation; its writes must
	// be visible once RunWithSpinner returns.
	finished := false
	err := RunWithSpinner(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(20 * time.Millisecond)
		finished = true
		return ctx.Err()
	})

	assert.True(t, finished)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunWithSpinner_TimeoutReachesAction(t *testing.T) {
	err := RunWithSpinner(context.Background(), func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return errors.New("timeout never fired")
		}
	}, WithTimeout(30*time.Millisecond))

	require.ErrorIs(t, err, context.DeadlineExceeded)
}
