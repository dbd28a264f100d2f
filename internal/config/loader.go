package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for appupdater configuration.
const envPrefix = "APPUPDATER"

// envBindings maps config keys to their environment variables.
var envBindings = map[string]string{
	"applicationId":     envPrefix + "_APPLICATION_ID",
	"currentVersion":    envPrefix + "_CURRENT_VERSION",
	"metadataUrl":       envPrefix + "_METADATA_URL",
	"packageUrl":        envPrefix + "_PACKAGE_URL",
	"changelogUrl":      envPrefix + "_CHANGELOG_URL",
	"cacheDir":          envPrefix + "_CACHE_DIR",
	"http.timeout":      envPrefix + "_HTTP_TIMEOUT",
	"http.userAgent":    envPrefix + "_HTTP_USER_AGENT",
	"installer.command": envPrefix + "_INSTALLER_COMMAND",
	"log.file":          envPrefix + "_LOG_FILE",
	"log.timestamps":    envPrefix + "_LOG_TIMESTAMPS",
	"metrics.textfile":  envPrefix + "_METRICS_TEXTFILE",
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about, so every env var is bound.
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	// A missing file is fine; defaults and env vars still apply.
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

// Sources reports where each bound key's value came from after Load.
func (l *Loader) Sources() map[string]ConfigSource {
	sources := make(map[string]ConfigSource, len(envBindings))
	for key, env := range envBindings {
		switch {
		case os.Getenv(env) != "":
			sources[key] = SourceEnv
		case l.v.InConfig(key):
			sources[key] = SourceConfig
		default:
			sources[key] = SourceDefault
		}
	}
	return sources
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
