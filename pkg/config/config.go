package config

import "time"

// Config is the top-level configuration for the saturn tool.
type Config struct {
	// Contracts configures contract loading
	Contracts ContractsConfig `yaml:"contracts"`

	// Store configures snapshot persistence
	Store StoreConfig `yaml:"store"`

	// Metrics configures prometheus instrumentation
	Metrics MetricsConfig `yaml:"metrics"`
}

// ContractsConfig configures which contracts are loaded and the loader's
// resource limits.
type ContractsConfig struct {
	// Paths are the root contract files to load
	Paths []string `yaml:"paths"`

	// MaxDepth is the maximum include depth (default: 10)
	MaxDepth int `yaml:"max_depth"`

	// MaxFileSize is the maximum contract file size in bytes
	// (default: 1 MiB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// WatchDebounce is the quiet period before a watched change triggers
	// a reload (default: 100ms)
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// ResyncSchedule is a cron expression for periodic full reloads;
	// empty disables scheduled resync
	ResyncSchedule string `yaml:"resync_schedule"`
}

// StoreConfig configures the SQLite snapshot store.
type StoreConfig struct {
	// Enabled controls whether snapshots are persisted
	Enabled bool `yaml:"enabled"`

	// Path is the database file path
	Path string `yaml:"path"`
}

// MetricsConfig configures prometheus instrumentation.
type MetricsConfig struct {
	// Enabled controls whether load metrics are recorded
	Enabled bool `yaml:"enabled"`

	// Listen is the address the metrics endpoint binds to when enabled
	// (default: 127.0.0.1:9090)
	Listen string `yaml:"listen"`
}
