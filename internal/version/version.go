// Package version provides version information for the updater CLI.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("appupdater version %s\n  Commit:    %s\n  Built:     %s\n  Go:        %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion)
}

// DisplayName normalizes a release's version name for display.
// Semantic versions gain a "v" prefix; anything else is returned as is.
// Version names are never used for ordering.
func DisplayName(versionName string) string {
	v, err := semver.NewVersion(versionName)
	if err != nil {
		return versionName
	}
	return "v" + v.String()
}

// DescribeRelease renders a release as "<name> (build <code>)".
func DescribeRelease(versionName string, versionCode int64) string {
	if versionName == "" {
		return fmt.Sprintf("build %d", versionCode)
	}
	return fmt.Sprintf("%s (build %d)", DisplayName(versionName), versionCode)
}
