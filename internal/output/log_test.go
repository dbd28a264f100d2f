package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog sets up the logger to write to a buffer and returns the buffer.
func captureLog(cfg LogConfig) *bytes.Buffer {
	var buf bytes.Buffer
	SetupLogging(cfg)
	logger = log.NewWithOptions(&buf, log.Options{
		Level:           logger.GetLevel(),
		ReportTimestamp: cfg.resolveTimestamps(),
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
	return &buf
}

// resolveTimestamps applies the same logic as SetupLogging for test verification.
func (c LogConfig) resolveTimestamps() bool {
	if c.Verbose {
		return true
	}
	if c.Timestamps != nil {
		return *c.Timestamps
	}
	return true
}

func TestSetupLogging_TimestampExplicitlyDisabled(t *testing.T) {
	buf := captureLog(LogConfig{Timestamps: BoolPtr(false)})
	Info("hello")
	out := buf.String()
	assert.NotRegexp(t, `^\d{1,2}:\d{2}:\d{2}`, strings.TrimSpace(out),
		"output should not start with a timestamp")
}

func TestSetupLogging_VerboseEnablesDebugLevel(t *testing.T) {
	SetupLogging(LogConfig{Verbose: true})
	assert.Equal(t, log.DebugLevel, logger.GetLevel(), "verbose should set debug level")
}

func TestSetupLogging_DefaultInfoLevel(t *testing.T) {
	SetupLogging(LogConfig{})
	assert.Equal(t, log.InfoLevel, logger.GetLevel(), "default should be info level")
}

func TestSetupLogging_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "updater.log")

	SetupLogging(LogConfig{File: path, MaxSizeMB: 1, Timestamps: BoolPtr(false)})
	Warn("metadata fetch failed", "url", "https://example.com/output.json")
	CloseLogFile()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "metadata fetch failed")
	assert.Contains(t, string(data), "https://example.com/output.json")

	SetupLogging(LogConfig{})
}

func TestLogger_HasPrefix(t *testing.T) {
	SetupLogging(LogConfig{})
	l := Logger("updater")
	assert.NotNil(t, l)
	assert.Contains(t, l.GetPrefix(), "updater")
}

func TestBoolPtr(t *testing.T) {
	assert.True(t, *BoolPtr(true))
	assert.False(t, *BoolPtr(false))
}
