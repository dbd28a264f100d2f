package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appupdater/cli/internal/config"
	oerrors "github.com/appupdater/cli/internal/errors"
	"github.com/appupdater/cli/internal/output"
	"github.com/appupdater/cli/internal/transport"
	"github.com/appupdater/cli/internal/version"
)

// GlobalConfig holds CLI-wide state resolved during PersistentPreRunE and
// passed explicitly into every sub-command.
type GlobalConfig struct {
	Config     *config.Config
	Sources    map[string]config.ConfigSource
	ConfigPath string
	Verbose    bool
	Output     output.OutputFormat

	// Transport hands out HTTP clients keyed by application id.
	Transport *transport.Registry
}

// Client returns the shared HTTP client for the configured application.
func (g *GlobalConfig) Client() *transport.Client {
	return g.Transport.Client(g.Config.ApplicationID)
}

type rootFlags struct {
	config     string
	output     string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the appupdater CLI.
func NewRootCmd() *cobra.Command {
	g := &GlobalConfig{}
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "appupdater",
		Short: "Self-update client for published application builds",
		Long: `appupdater checks a published build metadata document for a newer
version, shows its changelog, asks for consent, downloads the package and
hands it to the platform installer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, g, flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: APPUPDATER_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "table", "Output format: table, yaml, json")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewCheckCmd(g))
	rootCmd.AddCommand(NewChangelogCmd(g))
	rootCmd.AddCommand(NewUpdateCmd(g))
	rootCmd.AddCommand(NewConfigCmd(g))
	rootCmd.AddCommand(NewVersionCmd(g))

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(c *cobra.Command, g *GlobalConfig, flags *rootFlags) error {
	format, ok := output.ParseOutputFormat(flags.output)
	if !ok {
		return NewExitError(oerrors.NewValidationError(
			fmt.Sprintf("invalid output format %q", flags.output),
			"--output",
			fmt.Sprintf("Use one of: %v", output.ValidFormats()),
		), ExitValidationError)
	}
	g.Output = format
	g.Verbose = flags.verbose

	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: flags.config})
	if err != nil {
		return NewExitError(oerrors.Wrap(oerrors.ErrNotFound, err, "resolving config path"), ExitNotFound)
	}
	g.ConfigPath = pathResult.ConfigPath

	loader := config.NewLoader()
	cfg, err := loader.LoadWithDefaults(g.ConfigPath)
	if err != nil {
		return NewExitError(oerrors.Wrap(oerrors.ErrValidation, err, "loading configuration"), ExitValidationError)
	}
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = "appupdater/" + version.Get().Version
	}
	g.Config = cfg
	g.Sources = loader.Sources()

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{
		Verbose:    flags.verbose,
		Timestamps: cfg.Log.Timestamps,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	}
	output.SetupLogging(logCfg)

	g.Transport = transport.NewRegistry(transport.Options{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
	})

	output.Debug("initializing CLI",
		"config", g.ConfigPath,
		"configSource", pathResult.Source,
		"output", g.Output,
		"applicationId", cfg.ApplicationID,
	)

	return nil
}
