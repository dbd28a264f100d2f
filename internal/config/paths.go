package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for appupdater.
type Paths struct {
	// ConfigFile is the path to the config file (~/.appupdater/config.yaml).
	ConfigFile string

	// CacheDir is the path to the cache directory (~/.appupdater/cache).
	CacheDir string

	// HomeDir is the appupdater home directory (~/.appupdater).
	HomeDir string
}

// DefaultPaths returns the default paths for appupdater.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".appupdater")

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		CacheDir:   filepath.Join(home, "cache"),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path.
// If APPUPDATER_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(envPrefix + "_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// GetCacheDir returns the cache directory path.
// If APPUPDATER_CACHE_DIR is set, it takes precedence.
func GetCacheDir() (string, error) {
	if envPath := os.Getenv(envPrefix + "_CACHE_DIR"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.CacheDir, nil
}

// EnsureDir creates dir and its parents if they don't exist.
func EnsureDir(dir string) error {
	expanded, err := ExpandPath(dir)
	if err != nil {
		return err
	}
	return os.MkdirAll(expanded, 0o755)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
