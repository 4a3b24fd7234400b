package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// TruncateLimits bounds how much of long tool output and thinking is shown in truncate mode
type TruncateLimits struct {
	MaxLines              int `yaml:"max_lines"`
	MaxLineLength         int `yaml:"max_line_length"`
	MaxThinkingLines      int `yaml:"max_thinking_lines"`
	MaxThinkingLineLength int `yaml:"max_thinking_line_length"`
}

// DefaultTruncateLimits returns the limits used when the config file sets none
func DefaultTruncateLimits() TruncateLimits {
	return TruncateLimits{
		MaxLines:              30,
		MaxLineLength:         120,
		MaxThinkingLines:      20,
		MaxThinkingLineLength: 118,
	}
}

// Config is the optional YAML configuration file
type Config struct {
	IdleThreshold         time.Duration  `yaml:"idle_threshold"`
	LongResponseThreshold time.Duration  `yaml:"long_response_threshold"`
	HistogramDays         int            `yaml:"histogram_days"`
	Truncate              TruncateLimits `yaml:"truncate"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		IdleThreshold:         DefaultIdleThreshold,
		LongResponseThreshold: DefaultLongResponseThreshold,
		HistogramDays:         10,
		Truncate:              DefaultTruncateLimits(),
	}
}

// WorkTime returns the reconstruction thresholds from the config
func (c *Config) WorkTime() WorkTimeConfig {
	return WorkTimeConfig{
		IdleThreshold:         c.IdleThreshold,
		LongResponseThreshold: c.LongResponseThreshold,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/chat-history/config.yaml (or ~/.config/...)
func DefaultConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "chat-history", "config.yaml"), nil
}

// LoadConfig reads the config file at path. An empty path means the default
// location, where a missing file is not an error; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			LogDebug("No default config path: %v", err)
			return cfg, nil
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, &ConfigError{Path: path, Err: err}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}

	LogDebug("Loaded config from %s", path)
	return cfg, nil
}

func (c *Config) validate(path string) error {
	if c.IdleThreshold <= 0 {
		return &ConfigError{Path: path, Field: "idle_threshold", Err: fmt.Errorf("must be positive, got %s", c.IdleThreshold)}
	}
	if c.LongResponseThreshold <= 0 {
		return &ConfigError{Path: path, Field: "long_response_threshold", Err: fmt.Errorf("must be positive, got %s", c.LongResponseThreshold)}
	}
	if c.HistogramDays < 0 {
		return &ConfigError{Path: path, Field: "histogram_days", Err: fmt.Errorf("must not be negative, got %d", c.HistogramDays)}
	}

	defaults := DefaultTruncateLimits()
	if c.Truncate.MaxLines <= 0 {
		c.Truncate.MaxLines = defaults.MaxLines
	}
	if c.Truncate.MaxLineLength <= 0 {
		c.Truncate.MaxLineLength = defaults.MaxLineLength
	}
	if c.Truncate.MaxThinkingLines <= 0 {
		c.Truncate.MaxThinkingLines = defaults.MaxThinkingLines
	}
	if c.Truncate.MaxThinkingLineLength <= 0 {
		c.Truncate.MaxThinkingLineLength = defaults.MaxThinkingLineLength
	}
	return nil
}
