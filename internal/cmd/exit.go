// Package cmd provides command implementations for the appupdater CLI.
package cmd

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid configuration or flags.
	ExitValidationError = 2

	// ExitConnectivityError indicates the update server could not be reached.
	ExitConnectivityError = 3

	// ExitPermissionDenied indicates a file could not be written.
	ExitPermissionDenied = 4

	// ExitNotFound indicates a file or resource was not found.
	ExitNotFound = 5

	// ExitInvalidMetadata indicates the published metadata is unusable.
	ExitInvalidMetadata = 6

	// ExitDownloadFailed indicates the package could not be downloaded.
	ExitDownloadFailed = 7

	// ExitInstallerFailed indicates the installer could not be launched.
	ExitInstallerFailed = 8

	// ExitInterrupted indicates the run was cancelled by a signal.
	ExitInterrupted = 130
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
	case ExitConnectivityError:
		return "Connectivity Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	case ExitInvalidMetadata:
		return "Invalid Metadata"
	case ExitDownloadFailed:
		return "Download Failed"
	case ExitInstallerFailed:
		return "Installer Failed"
	case ExitInterrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}
