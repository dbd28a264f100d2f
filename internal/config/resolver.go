package config

import (
	"os"
	"strconv"

	"github.com/appupdater/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records the final value of a key and what it shadowed.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// Overrides holds command-line values. Nil fields were not set.
type Overrides struct {
	CurrentVersion *int64
	MetadataURL    *string
	PackageURL     *string
	ChangelogURL   *string
	CacheDir       *string
}

// ApplyOverrides writes flag values into cfg using precedence
// flag > env > config > default and returns how each key was resolved.
// sources comes from Loader.Sources and may be nil.
func ApplyOverrides(cfg *Config, sources map[string]ConfigSource, o Overrides) []ResolvedValue {
	sourceOf := func(key string) ConfigSource {
		if s, ok := sources[key]; ok {
			return s
		}
		return SourceDefault
	}

	resolveString := func(key string, field *string, flag *string) ResolvedValue {
		rv := ResolvedValue{Key: key, Value: *field, Source: sourceOf(key), Shadowed: map[ConfigSource]string{}}
		if flag != nil {
			if *field != "" {
				rv.Shadowed[rv.Source] = *field
			}
			*field = *flag
			rv.Value = *flag
			rv.Source = SourceFlag
		}
		return rv
	}

	version := ResolvedValue{
		Key:      "currentVersion",
		Value:    strconv.FormatInt(cfg.CurrentVersion, 10),
		Source:   sourceOf("currentVersion"),
		Shadowed: map[ConfigSource]string{},
	}
	if o.CurrentVersion != nil {
		if cfg.CurrentVersion != 0 {
			version.Shadowed[version.Source] = version.Value
		}
		cfg.CurrentVersion = *o.CurrentVersion
		version.Value = strconv.FormatInt(*o.CurrentVersion, 10)
		version.Source = SourceFlag
	}

	return []ResolvedValue{
		version,
		resolveString("metadataUrl", &cfg.MetadataURL, o.MetadataURL),
		resolveString("packageUrl", &cfg.PackageURL, o.PackageURL),
		resolveString("changelogUrl", &cfg.ChangelogURL, o.ChangelogURL),
		resolveString("cacheDir", &cfg.CacheDir, o.CacheDir),
	}
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) APPUPDATER_CONFIG env, (3) ~/.appupdater/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(envPrefix + "_CONFIG")

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
