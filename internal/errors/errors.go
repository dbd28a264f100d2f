// Package errors provides sentinel errors and structured error details for the updater.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// DetailError captures structured error information for display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the URL or file path involved (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewDownloadError creates a download error with details.
func NewDownloadError(message, location, hint string, cause error) error {
	return &DetailError{
		Type:     "download failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    Wrap(ErrDownload, cause, message),
	}
}

// NewMetadataError creates a metadata error with details.
func NewMetadataError(message, location string, cause error) error {
	return &DetailError{
		Type:     "invalid metadata",
		Message:  message,
		Location: location,
		Hint:     "Check that the metadata document is the build output JSON with at least one element.",
		Cause:    cause,
	}
}

// NewValidationError creates a configuration validation error with details.
func NewValidationError(message, location, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// Wrap wraps err with a sentinel error type and a message.
// A nil err yields just the message and sentinel.
func Wrap(sentinel, err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: %w", message, sentinel)
	}
	return fmt.Errorf("%s: %w: %w", message, sentinel, err)
}
