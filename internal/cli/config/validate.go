package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

var (
	validOutputs    = []string{"auto", "text", "markdown", "json", "yaml"}
	validLogFormats = []string{"text", "json"}
	validDelimiters = []string{"auto", ",", ";", "comma", "semicolon"}
	validSeverities = []string{"error", "warning", "info", "hint"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(validOutputs, c.OutputFormat) {
		return fmt.Errorf("invalid output %q: must be one of %v", c.OutputFormat, validOutputs)
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		return fmt.Errorf("invalid log_format %q: must be one of %v", c.LogFormat, validLogFormats)
	}
	if !slices.Contains(validDelimiters, c.Delimiter) {
		return fmt.Errorf("invalid delimiter %q: must be one of %v", c.Delimiter, validDelimiters)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	for id, sev := range c.Lint.Severity {
		if !slices.Contains(validSeverities, strings.ToLower(sev)) {
			return fmt.Errorf("invalid lint.severity for %s %q: must be one of %v", id, sev, validSeverities)
		}
	}
	return nil
}
