package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{
		CurrentVersion: 3,
		MetadataURL:    "https://file.example.com/output.json",
		PackageURL:     "https://env.example.com/app.apk",
	}
	sources := map[string]ConfigSource{
		"currentVersion": SourceConfig,
		"metadataUrl":    SourceConfig,
		"packageUrl":     SourceEnv,
	}
	version := int64(12)

	values := ApplyOverrides(cfg, sources, Overrides{
		CurrentVersion: &version,
		MetadataURL:    strPtr("https://flag.example.com/output.json"),
	})

	assert.Equal(t, int64(12), cfg.CurrentVersion)
	assert.Equal(t, "https://flag.example.com/output.json", cfg.MetadataURL)
	assert.Equal(t, "https://env.example.com/app.apk", cfg.PackageURL)

	byKey := map[string]ResolvedValue{}
	for _, v := range values {
		byKey[v.Key] = v
	}

	assert.Equal(t, SourceFlag, byKey["currentVersion"].Source)
	assert.Equal(t, "3", byKey["currentVersion"].Shadowed[SourceConfig])
	assert.Equal(t, SourceFlag, byKey["metadataUrl"].Source)
	assert.Equal(t, "https://file.example.com/output.json", byKey["metadataUrl"].Shadowed[SourceConfig])
	assert.Equal(t, SourceEnv, byKey["packageUrl"].Source)
	assert.Empty(t, byKey["packageUrl"].Shadowed)
	assert.Equal(t, SourceDefault, byKey["changelogUrl"].Source)
}

func TestResolveConfigPath(t *testing.T) {
	paths, err := DefaultPaths()
	require.NoError(t, err)

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv("APPUPDATER_CONFIG", "/env/config.yaml")
		result, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: "/flag/config.yaml"})
		require.NoError(t, err)
		assert.Equal(t, "/flag/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceFlag, result.Source)
		assert.Equal(t, "/env/config.yaml", result.Shadowed[SourceEnv])
	})

	t.Run("env over default", func(t *testing.T) {
		t.Setenv("APPUPDATER_CONFIG", "/env/config.yaml")
		result, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)
		assert.Equal(t, "/env/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceEnv, result.Source)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv("APPUPDATER_CONFIG", "")
		result, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)
		assert.Equal(t, paths.ConfigFile, result.ConfigPath)
		assert.Equal(t, SourceDefault, result.Source)
		assert.Equal(t, "config.yaml", filepath.Base(result.ConfigPath))
	})
}
