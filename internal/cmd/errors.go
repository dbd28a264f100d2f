package cmd

import (
	"context"
	"errors"

	oerrors "github.com/appupdater/cli/internal/errors"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the error was already shown to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Download and installer errors may wrap transport errors, so they go first.
	switch {
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, oerrors.ErrValidation):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrDownload):
		return ExitDownloadFailed
	case errors.Is(err, oerrors.ErrInstallerHandoff):
		return ExitInstallerFailed
	case errors.Is(err, oerrors.ErrMalformedMetadata), errors.Is(err, oerrors.ErrNoVariant):
		return ExitInvalidMetadata
	case errors.Is(err, oerrors.ErrTransport):
		return ExitConnectivityError
	case errors.Is(err, oerrors.ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, oerrors.ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

// withExitCode wraps err in an ExitError carrying its mapped code.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return NewExitError(err, ExitCodeFromError(err))
}
