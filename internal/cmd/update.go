package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/appupdater/cli/internal/changelog"
	"github.com/appupdater/cli/internal/config"
	"github.com/appupdater/cli/internal/download"
	"github.com/appupdater/cli/internal/host"
	"github.com/appupdater/cli/internal/installer"
	"github.com/appupdater/cli/internal/output"
	"github.com/appupdater/cli/internal/resolver"
	"github.com/appupdater/cli/internal/updater"
	"github.com/appupdater/cli/internal/version"
)

// NewUpdateCmd creates the update command.
func NewUpdateCmd(g *GlobalConfig) *cobra.Command {
	flags := &targetFlags{}
	var assumeYes bool

	c := &cobra.Command{
		Use:   "update",
		Short: "Check, confirm, download and install a newer build",
		Long: `Run the full update flow:

  1. Fetch the build metadata and compare version codes
  2. Fetch the changelog (optional)
  3. Ask for consent, showing the changelog
  4. Download the package, bypassing every cache
  5. Hand the package to the installer without waiting for it

Without a terminal the update is declined unless --yes is given.
Interrupting the command aborts the flow without further prompts.

Examples:
  appupdater update --current-version 41
  appupdater update --current-version 41 --yes --package-url https://example.com/app.apk`,
		RunE: func(c *cobra.Command, _ []string) error {
			if err := flags.apply(c, g); err != nil {
				return withExitCode(err)
			}
			if err := config.RequireUpdate(g.Config); err != nil {
				return withExitCode(err)
			}
			if err := config.EnsureDir(g.Config.CacheDir); err != nil {
				return withExitCode(err)
			}

			h := host.NewTerminal(assumeYes, host.WithOutput(c.ErrOrStderr()))
			return runUpdate(c.Context(), c.OutOrStdout(), g, h, nil)
		},
	}

	flags.addVersionFlags(c)
	flags.addPackageFlags(c)
	flags.addChangelogFlag(c)
	c.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Accept the update without prompting")

	return c
}

// runUpdate wires the pipeline and reports the result. inst overrides the
// configured installer when non-nil.
func runUpdate(ctx context.Context, w io.Writer, g *GlobalConfig, h updater.Host, inst installer.Installer) error {
	cfg := g.Config
	client := g.Client()

	cacheDir, err := config.ExpandPath(cfg.CacheDir)
	if err != nil {
		return withExitCode(err)
	}
	if inst == nil {
		inst = installer.NewCommandInstaller(cfg.Installer.Command, cfg.Installer.Args)
	}

	opts := []updater.Option{
		updater.WithTransitionHook(func(from, to updater.State) {
			output.Debug("update transition", "from", from, "to", to)
		}),
	}
	rec := newRecorder(g)
	if rec != nil {
		opts = append(opts, updater.WithRecorder(rec))
	}
	defer flushMetrics(g, rec)

	u := updater.New(
		resolver.New(client),
		changelog.NewFetcher(client),
		download.New(client, cacheDir, download.WithIdleTimeout(client.Timeout())),
		inst,
		h,
		opts...,
	)

	report := u.Run(ctx, updater.Request{
		CurrentVersion: cfg.CurrentVersion,
		MetadataURL:    cfg.MetadataURL,
		PackageURL:     cfg.PackageURL,
		ChangelogURL:   cfg.ChangelogURL,
	})

	if err := writeReport(w, g, report); err != nil {
		return err
	}
	return reportError(report)
}

func writeReport(w io.Writer, g *GlobalConfig, report updater.Report) error {
	if g.Output != output.FormatTable {
		text, err := output.Marshal(report, g.Output)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		_, err = io.WriteString(w, text)
		return err
	}

	latest := version.DescribeRelease(report.Check.RemoteVersionName, report.Check.RemoteVersionCode)
	switch report.Outcome {
	case updater.OutcomeInstallerLaunched:
		fmt.Fprintln(w, output.FormatCheckmark("Installer launched for "+output.StyleNoun.Render(latest)))
		fmt.Fprintln(w, output.StyleDim.Render("  "+report.Package.Path))
	case updater.OutcomeUpToDate:
		fmt.Fprintln(w, output.FormatStatusLine(g.Config.ApplicationID, output.StatusCurrent))
	case updater.OutcomeDebugBuild:
		fmt.Fprintln(w, output.FormatStatusLine(g.Config.ApplicationID, output.StatusSkipped))
	case updater.OutcomeCheckFailed:
		fmt.Fprintln(w, output.FormatStatusLine(g.Config.ApplicationID, output.StatusDegraded))
	case updater.OutcomeDeclined:
		fmt.Fprintln(w, output.StyleDim.Render("Update to "+latest+" declined"))
	}
	return nil
}

// reportError maps a finished run to the command's error.
// Degraded checks exit 0; their cause is in the log.
func reportError(report updater.Report) error {
	switch report.Outcome {
	case updater.OutcomeCancelled:
		return NewExitError(context.Canceled, ExitInterrupted)
	case updater.OutcomeDownloadFailed:
		// The host already showed a failure notice.
		return &ExitError{Err: report.Err, Code: ExitDownloadFailed, Printed: true}
	case updater.OutcomeInstallerFailed:
		return NewExitError(report.Err, ExitInstallerFailed)
	case updater.OutcomeCheckFailed:
		if report.Err != nil && resolver.IsMetadataError(report.Err) {
			output.Error("published metadata is unusable", "error", report.Err)
		}
		return nil
	default:
		return nil
	}
}
