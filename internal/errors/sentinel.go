package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrTransport indicates a network failure: timeout, connection error or non-2xx status.
	ErrTransport = errors.New("transport error")

	// ErrMalformedMetadata indicates a metadata document that could not be decoded or
	// does not match the build metadata schema.
	ErrMalformedMetadata = errors.New("malformed metadata")

	// ErrNoVariant indicates a metadata document without any build variant.
	ErrNoVariant = errors.New("no variant in metadata")

	// ErrDownload indicates the package could not be retrieved or stored.
	ErrDownload = errors.New("download failed")

	// ErrInstallerHandoff indicates the platform install flow could not be launched.
	ErrInstallerHandoff = errors.New("installer handoff failed")

	// ErrHostInactive indicates the host surface was torn down.
	ErrHostInactive = errors.New("host context inactive")

	// ErrValidation indicates an invalid configuration value.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a file or directory was not found.
	ErrNotFound = errors.New("not found")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")
)
