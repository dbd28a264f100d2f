package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/appupdater/cli/internal/output"
	"github.com/appupdater/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show appupdater version information.

Displays the CLI version, commit, build date and Go version.`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVersion(c.OutOrStdout(), g.Output)
		},
	}
}

func runVersion(w io.Writer, format output.OutputFormat) error {
	info := version.Get()

	if format == output.FormatJSON || format == output.FormatYAML {
		text, err := output.Marshal(info, format)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	}

	_, err := fmt.Fprintln(w, info.String())
	return err
}
