package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err, "should get home directory")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no tilde", input: "/absolute/path", expected: "/absolute/path"},
		{name: "relative path without tilde", input: "relative/path", expected: "relative/path"},
		{name: "tilde only", input: "~", expected: homeDir},
		{
			name:     "tilde with path",
			input:    "~/.appupdater/config.yaml",
			expected: filepath.Join(homeDir, ".appupdater", "config.yaml"),
		},
		{name: "tilde username pattern (not expanded)", input: "~username/file", expected: "~username/file"},
		{name: "tilde in middle (not expanded)", input: "/path/~/file", expected: "/path/~/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	paths, err := DefaultPaths()
	require.NoError(t, err)

	assert.Equal(t, ".appupdater", filepath.Base(paths.HomeDir))
	assert.Equal(t, filepath.Join(paths.HomeDir, "config.yaml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(paths.HomeDir, "cache"), paths.CacheDir)
}

func TestPathEnvOverrides(t *testing.T) {
	t.Setenv("APPUPDATER_CONFIG", "/etc/appupdater.yaml")
	t.Setenv("APPUPDATER_CACHE_DIR", "/var/cache/appupdater")

	configFile, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/etc/appupdater.yaml", configFile)

	cacheDir, err := GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/appupdater", cacheDir)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
}
