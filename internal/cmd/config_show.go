package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/appupdater/cli/internal/output"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Print the configuration after merging defaults, the config file and
APPUPDATER_* environment variables. The table format prints YAML.`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigShow(c.OutOrStdout(), g)
		},
	}
}

func runConfigShow(w io.Writer, g *GlobalConfig) error {
	format := g.Output
	if format == output.FormatTable {
		format = output.FormatYAML
	}

	text, err := output.Marshal(g.Config, format)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if format == output.FormatYAML {
		fmt.Fprintln(w, output.StyleDim.Render("# "+g.ConfigPath))
	}
	_, err = io.WriteString(w, text)
	return err
}
