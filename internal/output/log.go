// Package output provides terminal output utilities.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logger is the global logger instance.
var logger *log.Logger

// fileSink is the rotating log file, if one is configured.
var fileSink io.WriteCloser

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// LogConfig holds the settings SetupLogging needs.
type LogConfig struct {
	// Verbose enables debug level, caller reporting and timestamps.
	Verbose bool

	// Timestamps overrides timestamp display. Nil means on.
	Timestamps *bool

	// File, when set, receives a copy of every log line with rotation.
	File string

	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept.
	MaxBackups int

	// MaxAgeDays is the age after which rotated files are removed.
	MaxAgeDays int

	// Compress gzips rotated files.
	Compress bool
}

// SetupLogging configures the logger.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := true
	if cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}
	if cfg.Verbose {
		timestamps = true
	}

	CloseLogFile()

	var w io.Writer = os.Stderr
	if cfg.File != "" {
		fileSink = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		w = io.MultiWriter(os.Stderr, fileSink)
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// CloseLogFile flushes and closes the rotating log file, if any.
func CloseLogFile() {
	if fileSink != nil {
		_ = fileSink.Close()
		fileSink = nil
	}
}

// Logger returns a child logger with the given prefix.
func Logger(prefix string) *log.Logger {
	return logger.WithPrefix(prefix)
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// Print prints a message to stdout without any formatting.
func Print(msg string) {
	os.Stdout.WriteString(msg)
}

// Println prints a message to stdout with a newline.
func Println(msg string) {
	os.Stdout.WriteString(msg + "\n")
}

// Details prints multi-line text to stderr as-is.
func Details(text string) {
	os.Stderr.WriteString(text + "\n")
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
