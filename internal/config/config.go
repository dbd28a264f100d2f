// Package config provides configuration loading and management.
package config

import (
	"time"
)

// HTTPConfig configures the shared transport.
type HTTPConfig struct {
	// Timeout bounds connecting and waiting for response headers.
	// Env: APPUPDATER_HTTP_TIMEOUT, Default: 20s
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// UserAgent is sent with every request.
	// Env: APPUPDATER_HTTP_USER_AGENT, Default: appupdater/<version>
	UserAgent string `mapstructure:"userAgent" yaml:"userAgent,omitempty" json:"userAgent,omitempty"`
}

// InstallerConfig selects the command that opens a downloaded package.
// Args may contain {path} and {uri} placeholders.
type InstallerConfig struct {
	Command string   `mapstructure:"command" yaml:"command,omitempty" json:"command,omitempty"`
	Args    []string `mapstructure:"args" yaml:"args,omitempty" json:"args,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty" json:"timestamps,omitempty"`

	// File additionally writes logs to a rotating file.
	File string `mapstructure:"file" yaml:"file,omitempty" json:"file,omitempty"`

	// MaxSize is the size in megabytes at which the log file rotates.
	MaxSize int `mapstructure:"maxSize" yaml:"maxSize,omitempty" json:"maxSize,omitempty"`

	// MaxBackups is the number of rotated files kept.
	MaxBackups int `mapstructure:"maxBackups" yaml:"maxBackups,omitempty" json:"maxBackups,omitempty"`

	// MaxAge is the number of days rotated files are kept.
	MaxAge int `mapstructure:"maxAge" yaml:"maxAge,omitempty" json:"maxAge,omitempty"`

	// Compress gzips rotated files.
	Compress bool `mapstructure:"compress" yaml:"compress,omitempty" json:"compress,omitempty"`
}

// MetricsConfig configures the metrics textfile.
type MetricsConfig struct {
	// Textfile is written after every run when set.
	Textfile string `mapstructure:"textfile" yaml:"textfile,omitempty" json:"textfile,omitempty"`
}

// Config represents the appupdater configuration.
// Loaded from ~/.appupdater/config.yaml and APPUPDATER_* environment variables.
type Config struct {
	// ApplicationID keys the shared HTTP client.
	ApplicationID string `mapstructure:"applicationId" yaml:"applicationId,omitempty" json:"applicationId,omitempty"`

	// CurrentVersion is the running build's version code. 1 marks a debug build.
	CurrentVersion int64 `mapstructure:"currentVersion" yaml:"currentVersion,omitempty" json:"currentVersion,omitempty"`

	// MetadataURL points at the published build metadata JSON.
	MetadataURL string `mapstructure:"metadataUrl" yaml:"metadataUrl,omitempty" json:"metadataUrl,omitempty"`

	// PackageURL points at the published package.
	PackageURL string `mapstructure:"packageUrl" yaml:"packageUrl,omitempty" json:"packageUrl,omitempty"`

	// ChangelogURL is optional.
	ChangelogURL string `mapstructure:"changelogUrl" yaml:"changelogUrl,omitempty" json:"changelogUrl,omitempty"`

	// CacheDir holds downloaded packages.
	// Env: APPUPDATER_CACHE_DIR, Default: ~/.appupdater/cache
	CacheDir string `mapstructure:"cacheDir" yaml:"cacheDir,omitempty" json:"cacheDir,omitempty"`

	HTTP      HTTPConfig      `mapstructure:"http" yaml:"http,omitempty" json:"http,omitempty"`
	Installer InstallerConfig `mapstructure:"installer" yaml:"installer,omitempty" json:"installer,omitempty"`
	Log       LogConfig       `mapstructure:"log" yaml:"log,omitempty" json:"log,omitempty"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics,omitempty" json:"metrics,omitempty"`
}

const (
	defaultApplicationID = "default"
	defaultTimeout       = 20 * time.Second
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
)

// DefaultConfig returns a Config with all default values populated.
// Used by `appupdater config init` to generate the initial config file.
func DefaultConfig() *Config {
	cfg := &Config{
		ApplicationID: "com.example.app",
		MetadataURL:   "https://example.com/releases/output-metadata.json",
		PackageURL:    "https://example.com/releases/app-release.apk",
		ChangelogURL:  "https://example.com/releases/CHANGELOG.md",
	}
	return cfg.WithDefaults()
}

// WithDefaults fills unset fields with their defaults and returns cfg.
func (c *Config) WithDefaults() *Config {
	if c.ApplicationID == "" {
		c.ApplicationID = defaultApplicationID
	}
	if c.CacheDir == "" {
		if dir, err := GetCacheDir(); err == nil {
			c.CacheDir = dir
		}
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = defaultTimeout
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = defaultLogMaxSize
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = defaultLogMaxBackups
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = defaultLogMaxAge
	}
	return c
}
