package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/appupdater/cli/internal/config"
	oerrors "github.com/appupdater/cli/internal/errors"
	"github.com/appupdater/cli/internal/output"
	"github.com/appupdater/cli/internal/resolver"
	"github.com/appupdater/cli/internal/version"
)

// NewCheckCmd creates the check command.
func NewCheckCmd(g *GlobalConfig) *cobra.Command {
	flags := &targetFlags{}

	c := &cobra.Command{
		Use:   "check",
		Short: "Check whether a newer build is published",
		Long: `Fetch the published build metadata and compare its version code with
the running build.

A debug build (version code 1) never checks. An unreachable server is
reported as "degraded" and exits 0; unusable metadata exits non-zero.

Examples:
  # Check using configured URLs
  appupdater check --current-version 41

  # Machine-readable result
  appupdater check --current-version 41 --metadata-url https://example.com/output-metadata.json -o json`,
		RunE: func(c *cobra.Command, _ []string) error {
			if err := flags.apply(c, g); err != nil {
				return withExitCode(err)
			}
			if err := config.RequireCheck(g.Config); err != nil {
				return withExitCode(err)
			}
			return runCheck(c.Context(), c.OutOrStdout(), g)
		},
	}

	flags.addVersionFlags(c)

	return c
}

func runCheck(ctx context.Context, w io.Writer, g *GlobalConfig) error {
	res := resolver.New(g.Client())
	rec := newRecorder(g)
	defer flushMetrics(g, rec)

	var (
		result   resolver.CheckResult
		checkErr error
	)
	err := output.RunWithSpinner(ctx, func(ctx context.Context) error {
		result, checkErr = res.CheckForUpdate(ctx, g.Config.MetadataURL, g.Config.CurrentVersion)
		return nil
	}, output.WithTitle("Checking for updates..."))
	if err != nil {
		return withExitCode(err)
	}
	if rec != nil {
		rec.ObserveCheck(string(result.Reason))
	}

	if err := writeCheckResult(w, g, result); err != nil {
		return err
	}

	if checkErr != nil && resolver.IsMetadataError(checkErr) {
		checkErr = oerrors.NewMetadataError("published metadata is unusable", g.Config.MetadataURL, checkErr)
	}
	return withExitCode(checkErr)
}

func writeCheckResult(w io.Writer, g *GlobalConfig, result resolver.CheckResult) error {
	if g.Output != output.FormatTable {
		text, err := output.Marshal(result, g.Output)
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		_, err = io.WriteString(w, text)
		return err
	}

	row := output.ReleaseRow{
		Application: g.Config.ApplicationID,
		Current:     version.DescribeRelease("", result.CurrentVersionCode),
		Status:      checkStatus(result),
	}
	if result.Reason == resolver.ReasonNewer || result.Reason == resolver.ReasonUpToDate {
		row.Latest = version.DescribeRelease(result.RemoteVersionName, result.RemoteVersionCode)
	}
	fmt.Fprintln(w, output.RenderReleaseTable([]output.ReleaseRow{row}))
	if result.Degraded() && result.Err != nil {
		fmt.Fprintln(w, output.StyleDim.Render(result.Err.Error()))
	}
	return nil
}

// checkStatus maps a check reason to its display status.
func checkStatus(result resolver.CheckResult) string {
	switch result.Reason {
	case resolver.ReasonNewer:
		return output.StatusAvailable
	case resolver.ReasonUpToDate:
		return output.StatusCurrent
	case resolver.ReasonDebugBuild:
		return output.StatusSkipped
	case resolver.ReasonTransportFailure:
		return output.StatusDegraded
	default:
		return output.StatusFailed
	}
}
