package output

import (
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	// FormatYAML outputs in YAML format.
	FormatYAML OutputFormat = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON OutputFormat = "json"

	// FormatTable outputs human-readable lines.
	FormatTable OutputFormat = "table"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTable:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a string into an OutputFormat.
// The second result reports whether the string named a known format.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	case "table":
		return FormatTable, true
	default:
		return OutputFormat(s), false
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"table", "yaml", "json"}
}

// Marshal encodes v as YAML or JSON. The table format has no generic
// encoding and falls back to YAML.
func Marshal(v any, format OutputFormat) (string, error) {
	if format == FormatJSON {
		data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
