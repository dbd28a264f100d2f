// Package host provides the terminal surface an update runs in.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/huh"

	oerrors "github.com/appupdater/cli/internal/errors"
	"github.com/appupdater/cli/internal/output"
)

// ConfirmFunc asks a yes/no question and stores the answer in value.
type ConfirmFunc func(ctx context.Context, title, description string, value *bool) error

// ProgressFunc runs action behind a loading indicator.
type ProgressFunc func(ctx context.Context, title string, action func(ctx context.Context) error) error

// Terminal is an update surface on the controlling terminal.
type Terminal struct {
	// AssumeYes accepts every prompt without asking.
	AssumeYes bool

	out         io.Writer
	interactive func() bool
	confirm     ConfirmFunc
	progress    ProgressFunc

	closeOnce sync.Once
	closed    atomic.Bool
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithOutput sets where failure notices are written.
func WithOutput(w io.Writer) TerminalOption {
	return func(t *Terminal) {
		t.out = w
	}
}

// WithInteractive overrides terminal detection.
func WithInteractive(fn func() bool) TerminalOption {
	return func(t *Terminal) {
		t.interactive = fn
	}
}

// WithConfirm replaces the consent prompt.
func WithConfirm(fn ConfirmFunc) TerminalOption {
	return func(t *Terminal) {
		t.confirm = fn
	}
}

// WithProgress replaces the loading indicator.
func WithProgress(fn ProgressFunc) TerminalOption {
	return func(t *Terminal) {
		t.progress = fn
	}
}

// NewTerminal creates a Terminal host.
func NewTerminal(assumeYes bool, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		AssumeYes:   assumeYes,
		out:         os.Stderr,
		interactive: output.IsTTY,
		confirm:     huhConfirm,
		progress: func(ctx context.Context, title string, action func(ctx context.Context) error) error {
			return output.RunWithSpinner(ctx, action, output.WithTitle(title))
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Confirm asks for consent. Dismissing the prompt counts as declining.
// Without a terminal the update is declined unless AssumeYes is set.
func (t *Terminal) Confirm(ctx context.Context, title, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, oerrors.Wrap(oerrors.ErrHostInactive, err, "prompting")
	}
	if t.AssumeYes {
		output.Debug("consent assumed", "title", title)
		return true, nil
	}
	if !t.interactive() {
		output.Info("not running in a terminal, skipping update (use --yes to accept)")
		return false, nil
	}

	var accepted bool
	description := output.RenderMarkdown(message, output.TerminalWidth(80))
	err := t.confirm(ctx, title, description, &accepted)
	switch {
	case errors.Is(err, huh.ErrUserAborted):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("consent prompt: %w", err)
	}
	return accepted, nil
}

// RunWithProgress runs action while a spinner is shown.
func (t *Terminal) RunWithProgress(ctx context.Context, title string, action func(ctx context.Context) error) error {
	return t.progress(ctx, title, action)
}

// NotifyFailure prints a failure notice.
func (t *Terminal) NotifyFailure(message string) {
	fmt.Fprintln(t.out, output.FormatFailure(message))
}

// Close dismisses the surface. Further calls have no effect.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		output.Debug("update surface closed")
	})
}

// Closed reports whether Close has been called.
func (t *Terminal) Closed() bool {
	return t.closed.Load()
}

func huhConfirm(ctx context.Context, title, description string, value *bool) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Update").
			Negative("Not now").
			Value(value),
	)).RunWithContext(ctx)
}
