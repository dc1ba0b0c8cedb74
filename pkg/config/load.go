package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file, applies defaults, validates,
// and returns the result. Environment variables are not consulted; use
// LoadWithEnvOverrides for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// SATURN_SECTION_FIELD (e.g., SATURN_CONTRACTS_MAX_DEPTH) and always take
// precedence over file-based configuration.
func LoadWithEnvOverrides(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides overrides configuration fields from the environment.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("SATURN_CONTRACTS_PATHS"); v != "" {
		cfg.Contracts.Paths = strings.Split(v, ",")
	}
	if v := os.Getenv("SATURN_CONTRACTS_MAX_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SATURN_CONTRACTS_MAX_DEPTH %q: %w", v, err)
		}
		cfg.Contracts.MaxDepth = n
	}
	if v := os.Getenv("SATURN_CONTRACTS_MAX_FILE_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SATURN_CONTRACTS_MAX_FILE_SIZE %q: %w", v, err)
		}
		cfg.Contracts.MaxFileSize = n
	}
	if v := os.Getenv("SATURN_CONTRACTS_RESYNC_SCHEDULE"); v != "" {
		cfg.Contracts.ResyncSchedule = v
	}
	if v := os.Getenv("SATURN_CONTRACTS_WATCH_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SATURN_CONTRACTS_WATCH_DEBOUNCE %q: %w", v, err)
		}
		cfg.Contracts.WatchDebounce = d
	}
	if v := os.Getenv("SATURN_STORE_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SATURN_STORE_ENABLED %q: %w", v, err)
		}
		cfg.Store.Enabled = b
	}
	if v := os.Getenv("SATURN_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("SATURN_METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SATURN_METRICS_ENABLED %q: %w", v, err)
		}
		cfg.Metrics.Enabled = b
	}
	if v := os.Getenv("SATURN_METRICS_LISTEN"); v != "" {
		cfg.Metrics.Listen = v
	}
	return nil
}
