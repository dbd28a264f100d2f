package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	require.NotEmpty(t, info.GoVersion, "GoVersion should be populated")
	require.NotEmpty(t, info.Version, "Version should be populated")
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "v1.0.0",
		GitCommit: "abc123",
		BuildDate: "2026-01-29",
		GoVersion: "go1.25",
	}

	str := info.String()

	assert.Contains(t, str, "v1.0.0")
	assert.Contains(t, str, "abc123")
	assert.Contains(t, str, "2026-01-29")
	assert.Contains(t, str, "go1.25")
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.4.0", "v1.4.0"},
		{"v1.4.0", "v1.4.0"},
		{"1.4", "v1.4.0"},
		{"2.0.0-beta.1", "v2.0.0-beta.1"},
		{"nightly-2024", "nightly-2024"},
		{"release candidate", "release candidate"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.input))
		})
	}
}

func TestDescribeRelease(t *testing.T) {
	assert.Equal(t, "v1.4.0 (build 42)", DescribeRelease("1.4.0", 42))
	assert.Equal(t, "build 42", DescribeRelease("", 42))
}
