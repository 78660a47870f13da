// Package config provides configuration management for the dopler CLI.
package config

import "log/slog"

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat string `koanf:"output"`
	LogLevel     string `koanf:"log_level"`
	LogFormat    string `koanf:"log_format"`
	Verbose      bool   `koanf:"verbose"`
	Delimiter    string `koanf:"delimiter"`
	Color        bool   `koanf:"color"`

	Lint LintConfig `koanf:"lint"`

	// ConfigFile is the config file that was loaded, if any
	ConfigFile string `koanf:"-"`
}

// LintConfig holds lint rule configuration.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity"`
}

// Default configuration values.
const (
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultDelimiter = "auto"
)

// Config file names searched for, in order.
var configFileNames = []string{"dopler.yaml", "dopler.yml"}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Delimiter:    DefaultDelimiter,
		Color:        true,
	}
}

// DelimiterRune returns the CSV delimiter, or 0 to auto-detect.
func (c *Config) DelimiterRune() rune {
	switch c.Delimiter {
	case ",", "comma":
		return ','
	case ";", "semicolon":
		return ';'
	default:
		return 0
	}
}

// Level returns the slog level for LogLevel. Verbose forces debug.
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}
