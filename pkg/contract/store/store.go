package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"covenant-hq/saturn/pkg/contract/document"
)

// timestampFormat is RFC 3339 with a fixed-width fraction so that
// lexicographic ordering in SQL matches chronological ordering.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Snapshot is one persisted contract load.
type Snapshot struct {
	// LoadID uniquely identifies the load that produced this snapshot
	LoadID string

	// Name is the contract's declared name
	Name string

	// SourcePath is the root file the contract was loaded from
	SourcePath string

	// Contract is the fully resolved value tree
	Contract *document.Mapping

	// LoadedAt is when the load completed
	LoadedAt time.Time
}

// Config contains configuration for the snapshot store.
type Config struct {
	// Path is the database file path
	Path string

	// BusyTimeout is the duration to wait when the database is locked
	// (default: 5 seconds)
	BusyTimeout time.Duration
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() *Config {
	return &Config{
		Path:        "data/contracts.db",
		BusyTimeout: 5 * time.Second,
	}
}

// Store persists resolved contract snapshots in SQLite.
// Snapshots are an audit trail of what was loaded when; the in-memory
// registry remains the serving source of truth.
type Store struct {
	db     *sql.DB
	config *Config
	logger *slog.Logger
}

// New opens the snapshot store, creating the schema if needed.
func New(config *Config) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database %q: %w", config.Path, err)
	}

	s := &Store{
		db:     db,
		config: config,
		logger: slog.Default().With("component", "contract.store"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("snapshot store initialized", "path", config.Path)
	return s, nil
}

// initialize sets pragmas and creates the schema.
func (s *Store) initialize() error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	busyTimeout := s.config.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	var version int
	err := s.db.QueryRow(getSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != SchemaVersion {
		return fmt.Errorf("schema version mismatch: expected %d, got %d", SchemaVersion, version)
	}

	return nil
}

// SaveSnapshot persists one contract load.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot *Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}
	if snapshot.LoadID == "" {
		return fmt.Errorf("snapshot load ID cannot be empty")
	}

	contractYAML, err := document.Marshal(snapshot.Contract)
	if err != nil {
		return fmt.Errorf("failed to serialize contract %q: %w", snapshot.Name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO contract_snapshots (load_id, name, source_path, contract_yaml, loaded_at)
		VALUES (?, ?, ?, ?, ?)`,
		snapshot.LoadID,
		snapshot.Name,
		snapshot.SourcePath,
		string(contractYAML),
		snapshot.LoadedAt.UTC().Format(timestampFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot for contract %q: %w", snapshot.Name, err)
	}

	return nil
}

// LatestSnapshot returns the most recent snapshot for a contract name.
// It returns sql.ErrNoRows wrapped when no snapshot exists.
func (s *Store) LatestSnapshot(ctx context.Context, name string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT load_id, name, source_path, contract_yaml, loaded_at
		FROM contract_snapshots
		WHERE name = ?
		ORDER BY loaded_at DESC
		LIMIT 1`,
		name,
	)

	var snapshot Snapshot
	var contractYAML, loadedAt string
	if err := row.Scan(&snapshot.LoadID, &snapshot.Name, &snapshot.SourcePath, &contractYAML, &loadedAt); err != nil {
		return nil, fmt.Errorf("failed to load latest snapshot for %q: %w", name, err)
	}

	when, err := time.Parse(timestampFormat, loadedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid loaded_at timestamp for %q: %w", name, err)
	}
	snapshot.LoadedAt = when

	value, err := document.Unmarshal([]byte(contractYAML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored contract %q: %w", name, err)
	}
	contract, ok := value.(*document.Mapping)
	if !ok {
		return nil, fmt.Errorf("stored contract %q is not a mapping", name)
	}
	snapshot.Contract = contract

	return &snapshot, nil
}

// SnapshotCount returns the number of persisted snapshots.
func (s *Store) SnapshotCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contract_snapshots`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
