package config

import "fmt"

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if len(cfg.Contracts.Paths) == 0 {
		return fmt.Errorf("contracts.paths must list at least one contract file")
	}
	for i, path := range cfg.Contracts.Paths {
		if path == "" {
			return fmt.Errorf("contracts.paths[%d] is empty", i)
		}
	}
	if cfg.Contracts.MaxDepth < 1 {
		return fmt.Errorf("contracts.max_depth must be at least 1, got %d", cfg.Contracts.MaxDepth)
	}
	if cfg.Contracts.MaxFileSize < 1 {
		return fmt.Errorf("contracts.max_file_size must be positive, got %d", cfg.Contracts.MaxFileSize)
	}
	if cfg.Contracts.WatchDebounce < 0 {
		return fmt.Errorf("contracts.watch_debounce must not be negative")
	}
	if cfg.Store.Enabled && cfg.Store.Path == "" {
		return fmt.Errorf("store.path is required when the store is enabled")
	}
	return nil
}
