package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file.
	userConfigFile = "config.yaml"

	// envPrefix is the prefix of environment overrides, e.g. DK_LOG_LEVEL.
	envPrefix = "dk"

	// Default configuration values
	DefaultLogLevel   = "warn"
	DefaultMaxRetries = 0
)

// Config represents user configuration from config.yaml.
// This file is user-managed and never written by dk.
type Config struct {
	// DefaultAPIURL is used when no base URL has been persisted.
	// It takes precedence over the build-time default.
	DefaultAPIURL string `yaml:"default_api_url" envconfig:"DEFAULT_API_URL"`

	// LogLevel is the minimum zap level written to stderr.
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// MaxRetries is how often idempotent requests are retried on
	// transient failures. Zero disables retries.
	MaxRetries int `yaml:"max_retries" envconfig:"MAX_RETRIES"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   DefaultLogLevel,
		MaxRetries: DefaultMaxRetries,
	}
}

// LoadConfig loads config.yaml if it exists, otherwise returns defaults.
// Partial config files are merged with defaults. DK_* environment
// variables override values from the file.
func (s *Storage) LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(s.ConfigPath())
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
		}
	case os.IsNotExist(err):
		// No config file - keep defaults
	default:
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid max_retries in %s: must not be negative", userConfigFile)
	}

	return cfg, nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}
