package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title string
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// RunWithSpinner executes action in the background while a spinner is shown.
// Without a TTY the action runs directly. Returns the action's error.
func RunWithSpinner(ctx context.Context, action func(ctx context.Context) error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title: "Working...",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if !IsTTY() {
		return action(ctx)
	}

	var (
		actionErr error
		done      = make(chan struct{})
	)

	go func() {
		defer close(done)
		actionErr = action(ctx)
	}()

	spinnerErr := spinner.New().
		Title(cfg.title).
		Context(ctx).
		Action(func() {
			<-done
		}).
		Run()

	// The spinner may return early on cancellation; the action observes the
	// same context and is always waited for.
	<-done

	if actionErr != nil {
		return actionErr
	}
	if spinnerErr != nil && ctx.Err() == nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}
	return ctx.Err()
}
