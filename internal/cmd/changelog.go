package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/appupdater/cli/internal/changelog"
	oerrors "github.com/appupdater/cli/internal/errors"
	"github.com/appupdater/cli/internal/output"
)

// NewChangelogCmd creates the changelog command.
func NewChangelogCmd(g *GlobalConfig) *cobra.Command {
	flags := &targetFlags{}
	var raw bool

	c := &cobra.Command{
		Use:   "changelog",
		Short: "Show the changelog of the published build",
		Long: `Fetch the changelog and print the section shown in the update prompt:
at most 20 lines, ending before the first blank line.

Examples:
  appupdater changelog --changelog-url https://example.com/CHANGELOG.md
  appupdater changelog --raw`,
		RunE: func(c *cobra.Command, _ []string) error {
			if err := flags.apply(c, g); err != nil {
				return withExitCode(err)
			}
			return runChangelog(c.Context(), c.OutOrStdout(), g, raw)
		},
	}

	flags.addChangelogFlag(c)
	c.Flags().BoolVar(&raw, "raw", false, "Print the changelog without markdown rendering")

	return c
}

func runChangelog(ctx context.Context, w io.Writer, g *GlobalConfig, raw bool) error {
	if g.Config.ChangelogURL == "" {
		return withExitCode(oerrors.NewValidationError(
			"no changelog URL configured",
			"changelogUrl",
			"Pass --changelog-url or set changelogUrl in the config file.",
		))
	}

	fetcher := changelog.NewFetcher(g.Client())

	var result changelog.Result
	if err := output.RunWithSpinner(ctx, func(ctx context.Context) error {
		result = fetcher.Fetch(ctx, g.Config.ChangelogURL)
		return nil
	}, output.WithTitle("Fetching changelog...")); err != nil {
		return withExitCode(err)
	}

	if result.Reason == changelog.ReasonTransportFailure {
		return withExitCode(result.Err)
	}

	if g.Output != output.FormatTable {
		text, err := output.Marshal(result, g.Output)
		if err != nil {
			return fmt.Errorf("encoding changelog: %w", err)
		}
		_, err = io.WriteString(w, text)
		return err
	}

	text := result.Text
	if !raw {
		text = output.RenderMarkdown(text, output.TerminalWidth(80))
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
