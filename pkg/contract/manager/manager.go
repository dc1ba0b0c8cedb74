package manager

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"covenant-hq/saturn/pkg/contract/document"
	"covenant-hq/saturn/pkg/contract/loader"
	"covenant-hq/saturn/pkg/contract/store"
	"covenant-hq/saturn/pkg/contract/validator"
	"covenant-hq/saturn/pkg/telemetry/metrics"
)

// Config contains configuration for the contract manager.
type Config struct {
	// ContractPaths are the root contract files to load
	ContractPaths []string

	// MaxDepth is the maximum include depth per contract
	// (default: loader.DefaultMaxDepth)
	MaxDepth int

	// MaxFileSize is the maximum contract file size in bytes
	// (default: loader.DefaultMaxFileSize)
	MaxFileSize int64

	// Watcher configures hot reload; nil falls back to defaults when
	// Watch is called
	Watcher *FileWatcherConfig

	// ResyncSchedule is a cron expression for periodic full reloads;
	// empty disables scheduled resync
	ResyncSchedule string
}

// Manager coordinates contract loading, validation, registration, and
// hot reload. Reloads are atomic: the previously loaded contract set stays
// active if any file in the new set fails to load or validate.
type Manager struct {
	config    Config
	loader    *loader.Loader
	validator *validator.Validator
	registry  *Registry
	store     *store.Store
	metrics   *metrics.LoaderMetrics
	logger    *slog.Logger

	watcher   *FileWatcher
	scheduler *ResyncScheduler
}

// Option configures optional manager collaborators.
type Option func(*Manager)

// WithStore attaches a snapshot store; every successful load is persisted.
func WithStore(s *store.Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithMetrics attaches load instrumentation.
func WithMetrics(lm *metrics.LoaderMetrics) Option {
	return func(m *Manager) { m.metrics = lm }
}

// WithLogger sets the manager's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// New creates a contract manager for the given configuration.
func New(config Config, opts ...Option) (*Manager, error) {
	if len(config.ContractPaths) == 0 {
		return nil, fmt.Errorf("at least one contract path is required")
	}

	l := loader.NewLoader()
	if config.MaxDepth > 0 {
		l = l.WithMaxDepth(config.MaxDepth)
	}
	if config.MaxFileSize > 0 {
		l = l.WithMaxFileSize(config.MaxFileSize)
	}

	m := &Manager{
		config:    config,
		loader:    l,
		validator: validator.NewValidator(),
		registry:  NewRegistry(),
		logger:    slog.Default().With("component", "contract.manager"),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// LoadContracts loads, validates, and registers every configured contract.
// All contracts are loaded and validated before any are registered, so a
// failure leaves the registry untouched.
func (m *Manager) LoadContracts(ctx context.Context) error {
	started := time.Now()

	records := make([]*ContractRecord, 0, len(m.config.ContractPaths))
	for _, path := range m.config.ContractPaths {
		record, err := m.loadOne(path)
		if err != nil {
			m.observe(started, err)
			return err
		}
		records = append(records, record)
	}

	if err := m.registry.Replace(records); err != nil {
		return err
	}

	if m.store != nil {
		for _, record := range records {
			if err := m.persist(ctx, record); err != nil {
				// Persistence is advisory; the in-memory registry is the
				// source of truth for serving.
				m.logger.Error("failed to persist contract snapshot",
					"contract", record.Name,
					"error", err,
				)
			}
		}
	}

	m.observe(started, nil)
	m.logger.Info("contracts loaded",
		"count", len(records),
		"version", m.registry.Version(),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return nil
}

// ReloadContracts reloads every configured contract atomically.
func (m *Manager) ReloadContracts(ctx context.Context) error {
	return m.LoadContracts(ctx)
}

// loadOne loads and validates a single root contract file.
func (m *Manager) loadOne(path string) (*ContractRecord, error) {
	contract, err := m.loader.Load(path)
	if err != nil {
		return nil, err
	}

	if err := m.validator.Validate(contract); err != nil {
		return nil, fmt.Errorf("contract %q failed validation: %w", path, err)
	}

	name := contractName(contract, path)
	return &ContractRecord{
		Name:       name,
		Contract:   contract,
		SourcePath: path,
		LoadID:     uuid.NewString(),
		LoadedAt:   time.Now(),
	}, nil
}

// persist writes a contract snapshot to the store.
func (m *Manager) persist(ctx context.Context, record *ContractRecord) error {
	return m.store.SaveSnapshot(ctx, &store.Snapshot{
		LoadID:     record.LoadID,
		Name:       record.Name,
		SourcePath: record.SourcePath,
		Contract:   record.Contract,
		LoadedAt:   record.LoadedAt,
	})
}

// observe records load metrics when instrumentation is attached.
func (m *Manager) observe(started time.Time, err error) {
	if m.metrics == nil {
		return
	}
	m.metrics.RecordLoad(err, time.Since(started))
}

// GetContract retrieves a loaded contract by name.
func (m *Manager) GetContract(name string) (*document.Mapping, bool) {
	record, ok := m.registry.Get(name)
	if !ok {
		return nil, false
	}
	return record.Contract, true
}

// Registry exposes the underlying registry for read access.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Watch starts file watching and, when configured, scheduled resync.
// It blocks until the context is cancelled. Detected changes trigger an
// atomic reload; a failed reload keeps the previous contracts active.
func (m *Manager) Watch(ctx context.Context) error {
	watcherConfig := m.config.Watcher
	if watcherConfig == nil {
		watcherConfig = DefaultFileWatcherConfig()
	}
	if len(watcherConfig.Paths) == 0 {
		watcherConfig.Paths = m.config.ContractPaths
	}

	watcher, err := NewFileWatcher(watcherConfig, m.logger)
	if err != nil {
		return err
	}
	m.watcher = watcher

	if m.config.ResyncSchedule != "" {
		scheduler := NewResyncScheduler(m, m.config.ResyncSchedule)
		if err := scheduler.Start(); err != nil {
			return err
		}
		m.scheduler = scheduler
		defer scheduler.Stop()
	}

	return watcher.Watch(ctx, func() error {
		return m.ReloadContracts(ctx)
	})
}

// Close releases watcher and scheduler resources.
func (m *Manager) Close() error {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
	if m.watcher != nil {
		return m.watcher.Stop()
	}
	return nil
}

// contractName extracts the declared contract name, falling back to the
// source path when the contract omits one.
func contractName(contract *document.Mapping, path string) string {
	if raw, ok := contract.Get("name"); ok {
		if name, ok := raw.(string); ok && name != "" {
			return name
		}
	}
	return path
}
