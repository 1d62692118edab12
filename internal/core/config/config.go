// Package config handles configuration loading and validation for toasts.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Errors   ErrorsConfig `yaml:"errors"`
	Toasts   ToastsConfig `yaml:"toasts"`
}

// ErrorsConfig selects which global error channels are reported as
// notifications.
type ErrorsConfig struct {
	Sync     bool `yaml:"sync"`     // recovered panics
	Promise  bool `yaml:"promise"`  // failed background tasks
	Critical bool `yaml:"critical"` // error and fatal log lines
}

// ToastsConfig holds notification lifecycle settings.
type ToastsConfig struct {
	GracePeriod     time.Duration `yaml:"grace_period"`      // delay between hide and detach
	AllowPersistent bool          `yaml:"allow_persistent"`  // allow notifications without a duration
	ErrorDuration   time.Duration `yaml:"error_duration"`    // duration of error notifications
	ErrorTitleColor string        `yaml:"error_title_color"` // title color of error notifications
	MaxVisible      int           `yaml:"max_visible"`       // toasts drawn at once by the TUI
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Errors: ErrorsConfig{
			Sync:     true,
			Promise:  true,
			Critical: true,
		},
		Toasts: ToastsConfig{
			GracePeriod:     time.Second,
			ErrorDuration:   10 * time.Second,
			ErrorTitleColor: "#f51212",
			MaxVisible:      5,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Toasts.GracePeriod == 0 {
		c.Toasts.GracePeriod = defaults.Toasts.GracePeriod
	}
	if c.Toasts.ErrorDuration == 0 {
		c.Toasts.ErrorDuration = defaults.Toasts.ErrorDuration
	}
	if c.Toasts.ErrorTitleColor == "" {
		c.Toasts.ErrorTitleColor = defaults.Toasts.ErrorTitleColor
	}
	if c.Toasts.MaxVisible == 0 {
		c.Toasts.MaxVisible = defaults.Toasts.MaxVisible
	}
}
