package output

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title   string
	timeout time.Duration
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// WithTimeout sets the spinner timeout.
func WithTimeout(timeout time.Duration) SpinnerOption {
	return func(c *spinnerConfig) {
		c.timeout = timeout
	}
}

// RunWithSpinner executes an action, showing a spinner while it runs when
// stdout is a terminal. The action receives a context derived from ctx
// (carrying the configured timeout, if any) and must honor its cancellation.
// RunWithSpinner returns only after the action has returned, so anything the
// action wrote is safe to read afterwards.
func RunWithSpinner(ctx context.Context, action func(context.Context) error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title:   "Working...",
		timeout: 0,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	actionCtx := ctx
	var cancel context.CancelFunc
	if cfg.timeout > 0 {
		actionCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	var actionErr error
	done := make(chan struct{})

	go func() {
		actionErr = action(actionCtx)
		close(done)
	}()

	var spinnerErr error
	if IsTTY() {
		s := spinner.New().Title(cfg.title)
		spinnerErr = s.Action(func() {
			select {
			case <-actionCtx.Done():
			case <-done:
			}
		}).Run()
	}

	// Join before reading actionErr. Cancellation reaches the action
	// through actionCtx; the goroutine is never abandoned mid-write.
	<-done

	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}

	return actionErr
}
