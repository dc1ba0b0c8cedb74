package config

import "time"

// Default limits mirror the loader's own defaults so a config file that
// omits them behaves identically to calling the loader directly.
const (
	DefaultMaxDepth      = 10
	DefaultMaxFileSize   = int64(1 << 20)
	DefaultWatchDebounce = 100 * time.Millisecond
	DefaultStorePath     = "data/contracts.db"
	DefaultMetricsListen = "127.0.0.1:9090"
)

// ApplyDefaults fills in zero-valued fields with default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Contracts.MaxDepth == 0 {
		cfg.Contracts.MaxDepth = DefaultMaxDepth
	}
	if cfg.Contracts.MaxFileSize == 0 {
		cfg.Contracts.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Contracts.WatchDebounce == 0 {
		cfg.Contracts.WatchDebounce = DefaultWatchDebounce
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = DefaultMetricsListen
	}
}
