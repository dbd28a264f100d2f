package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	oerrors "github.com/appupdater/cli/internal/errors"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap lets callers match ErrValidation.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validator checks configuration values.
type Validator struct{}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks every field that is set.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	for _, f := range []struct {
		field string
		value string
	}{
		{"metadataUrl", cfg.MetadataURL},
		{"packageUrl", cfg.PackageURL},
		{"changelogUrl", cfg.ChangelogURL},
	} {
		if f.value == "" {
			continue
		}
		if err := ValidateURL(f.value); err != nil {
			errs = append(errs, ValidationError{Field: f.field, Message: err.Error()})
		}
	}

	if cfg.CurrentVersion < 0 {
		errs = append(errs, ValidationError{Field: "currentVersion", Message: "must not be negative"})
	}

	if cfg.CacheDir != "" && strings.TrimSpace(cfg.CacheDir) == "" {
		errs = append(errs, ValidationError{Field: "cacheDir", Message: "must not be empty or whitespace only"})
	}

	if cfg.HTTP.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "http.timeout", Message: "must not be negative"})
	}

	for _, f := range []struct {
		field string
		value int
	}{
		{"log.maxSize", cfg.Log.MaxSize},
		{"log.maxBackups", cfg.Log.MaxBackups},
		{"log.maxAge", cfg.Log.MaxAge},
	} {
		if f.value < 0 {
			errs = append(errs, ValidationError{Field: f.field, Message: "must not be negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateFile validates a configuration file at the given path.
func (v *Validator) ValidateFile(path string) error {
	loader := NewLoader()
	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return v.Validate(cfg)
}

// RequireCheck reports missing settings needed to check for an update.
func RequireCheck(cfg *Config) error {
	var errs ValidationErrors
	if cfg.CurrentVersion <= 0 {
		errs = append(errs, ValidationError{Field: "currentVersion", Message: "is required (--current-version)"})
	}
	if cfg.MetadataURL == "" {
		errs = append(errs, ValidationError{Field: "metadataUrl", Message: "is required (--metadata-url)"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RequireUpdate reports missing settings needed for a full update.
func RequireUpdate(cfg *Config) error {
	var errs ValidationErrors
	if err := RequireCheck(cfg); err != nil {
		errs = append(errs, err.(ValidationErrors)...)
	}
	if cfg.PackageURL == "" {
		errs = append(errs, ValidationError{Field: "packageUrl", Message: "is required (--package-url)"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}
