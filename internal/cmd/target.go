package cmd

import (
	"github.com/spf13/cobra"

	"github.com/appupdater/cli/internal/config"
	"github.com/appupdater/cli/internal/metrics"
	"github.com/appupdater/cli/internal/output"
)

// targetFlags are the per-command overrides of the update target.
type targetFlags struct {
	currentVersion int64
	metadataURL    string
	packageURL     string
	changelogURL   string
	cacheDir       string
}

func (f *targetFlags) addVersionFlags(c *cobra.Command) {
	c.Flags().Int64Var(&f.currentVersion, "current-version", 0,
		"Version code of the running build; 1 marks a debug build (env: APPUPDATER_CURRENT_VERSION)")
	c.Flags().StringVar(&f.metadataURL, "metadata-url", "",
		"URL of the published build metadata (env: APPUPDATER_METADATA_URL)")
}

func (f *targetFlags) addPackageFlags(c *cobra.Command) {
	c.Flags().StringVar(&f.packageURL, "package-url", "",
		"URL of the published package (env: APPUPDATER_PACKAGE_URL)")
	c.Flags().StringVar(&f.cacheDir, "cache-dir", "",
		"Directory for downloaded packages (env: APPUPDATER_CACHE_DIR)")
}

func (f *targetFlags) addChangelogFlag(c *cobra.Command) {
	c.Flags().StringVar(&f.changelogURL, "changelog-url", "",
		"URL of the changelog shown before updating (env: APPUPDATER_CHANGELOG_URL)")
}

// apply merges explicitly set flags into the global config and validates it.
func (f *targetFlags) apply(c *cobra.Command, g *GlobalConfig) error {
	var o config.Overrides
	if c.Flags().Changed("current-version") {
		o.CurrentVersion = &f.currentVersion
	}
	if c.Flags().Changed("metadata-url") {
		o.MetadataURL = &f.metadataURL
	}
	if c.Flags().Changed("package-url") {
		o.PackageURL = &f.packageURL
	}
	if c.Flags().Changed("changelog-url") {
		o.ChangelogURL = &f.changelogURL
	}
	if c.Flags().Changed("cache-dir") {
		o.CacheDir = &f.cacheDir
	}

	values := config.ApplyOverrides(g.Config, g.Sources, o)
	if g.Verbose {
		config.LogResolvedValues(values)
	}

	return config.NewValidator().Validate(g.Config)
}

// newRecorder returns a metrics recorder when a textfile is configured.
func newRecorder(g *GlobalConfig) *metrics.Recorder {
	if g.Config.Metrics.Textfile == "" {
		return nil
	}
	return metrics.NewRecorder()
}

// flushMetrics writes rec to the configured textfile. Failures are logged only.
func flushMetrics(g *GlobalConfig, rec *metrics.Recorder) {
	if rec == nil {
		return
	}
	path, err := config.ExpandPath(g.Config.Metrics.Textfile)
	if err == nil {
		err = rec.WriteTextfile(path)
	}
	if err != nil {
		output.Warn("could not write metrics", "path", g.Config.Metrics.Textfile, "error", err)
	}
}
