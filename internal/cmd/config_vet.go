package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appupdater/cli/internal/config"
	oerrors "github.com/appupdater/cli/internal/errors"
	"github.com/appupdater/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the appupdater configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. URLs are absolute http(s) URLs and numeric settings are not negative

The config path is resolved using precedence:
  --config flag > APPUPDATER_CONFIG env > ~/.appupdater/config.yaml`,
		RunE: func(c *cobra.Command, _ []string) error {
			if err := runConfigVet(g.ConfigPath); err != nil {
				return withExitCode(err)
			}
			fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+g.ConfigPath))
			return nil
		},
	}
}

func runConfigVet(path string) error {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, err, "could not resolve config path")
	}

	output.Debug("validating config", "path", expanded)

	if _, err := os.Stat(expanded); os.IsNotExist(err) {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: expanded,
			Hint:     "Run 'appupdater config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}

	return config.NewValidator().ValidateFile(expanded)
}
