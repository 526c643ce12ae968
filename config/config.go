// ABOUTME: Loads algoscope configuration from ~/.config/algoscope/config.yaml with env overrides.
// ABOUTME: Missing files fall back to defaults; a malformed file is an error, not a silent default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/algoscope/algoscope/backend"
)

// ConfigFileName is the name of the algoscope configuration file.
const ConfigFileName = "config.yaml"

// Config holds all algoscope configuration.
type Config struct {
	// ServerURL is the analysis backend base URL.
	ServerURL string `yaml:"server_url"`
	// RequestTimeoutSeconds bounds non-streaming HTTP requests.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	// HistoryPath is the sqlite file completed runs are saved to.
	// Empty means the default location next to the config file.
	HistoryPath string `yaml:"history_path"`
}

// RequestTimeout returns the configured request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:             backend.DefaultBaseURL,
		RequestTimeoutSeconds: 30,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "algoscope", ConfigFileName), nil
}

// DefaultHistoryPath returns the default sqlite history location.
func DefaultHistoryPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "algoscope", "history.db"), nil
}

// Load reads config from the default path, applies env overrides, and
// validates the result. A missing file yields defaults.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads config from a specific path, merging with defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with ALGOSCOPE_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("ALGOSCOPE_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("ALGOSCOPE_HISTORY"); v != "" {
		cfg.HistoryPath = v
	}
}

func validate(cfg *Config) error {
	if cfg.ServerURL == "" {
		return fmt.Errorf("invalid configuration: server_url must not be empty")
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid configuration: request_timeout_seconds must be positive, got %d", cfg.RequestTimeoutSeconds)
	}
	return nil
}
