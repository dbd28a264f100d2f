package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/appupdater/cli/internal/config"
	oerrors "github.com/appupdater/cli/internal/errors"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(g *GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the appupdater configuration.

Writes a config file with example URLs and default settings to the
resolved config path (~/.appupdater/config.yaml unless --config or
APPUPDATER_CONFIG is set).

Examples:
  # Initialize configuration
  appupdater config init

  # Overwrite existing configuration
  appupdater config init --force`,
		RunE: func(c *cobra.Command, _ []string) error {
			path, err := initConfigPath(g)
			if err != nil {
				return withExitCode(err)
			}
			if err := runConfigInit(path, force); err != nil {
				return withExitCode(err)
			}
			fmt.Fprintln(c.OutOrStdout(), "Configuration initialized at "+path)
			fmt.Fprintln(c.OutOrStdout(), "Validate with: appupdater config vet")
			return nil
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return c
}

func initConfigPath(g *GlobalConfig) (string, error) {
	if g.ConfigPath != "" {
		return config.ExpandPath(g.ConfigPath)
	}
	paths, err := config.DefaultPaths()
	if err != nil {
		return "", oerrors.Wrap(oerrors.ErrNotFound, err, "could not determine home directory")
	}
	return paths.ConfigFile, nil
}

func runConfigInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, err, "could not create config directory")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, err, "could not write "+path)
	}
	return nil
}
