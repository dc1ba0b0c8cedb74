package manager

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"covenant-hq/saturn/pkg/contract/document"
)

// ContractRecord is a loaded contract together with its load provenance.
type ContractRecord struct {
	// Name is the contract's declared name (its registry key)
	Name string

	// Contract is the fully resolved value tree
	Contract *document.Mapping

	// SourcePath is the root file the contract was loaded from
	SourcePath string

	// LoadID uniquely identifies the load that produced this record
	LoadID string

	// LoadedAt is when the load completed
	LoadedAt time.Time
}

// Registry is a thread-safe in-memory store of loaded contracts.
// Updates are atomic: Replace swaps the entire contract set at once, so
// readers never observe a partially reloaded state.
type Registry struct {
	mu       sync.RWMutex
	records  map[string]*ContractRecord
	version  string
	loadTime time.Time
}

// NewRegistry creates a new empty contract registry.
func NewRegistry() *Registry {
	return &Registry{
		records:  make(map[string]*ContractRecord),
		loadTime: time.Now(),
	}
}

// Register adds a contract record to the registry.
// An existing record with the same name is replaced.
func (r *Registry) Register(record *ContractRecord) error {
	if record == nil {
		return fmt.Errorf("contract record cannot be nil")
	}
	if record.Name == "" {
		return fmt.Errorf("contract name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.Name] = record
	r.updateVersion()
	return nil
}

// Replace atomically swaps the entire contract set.
// This backs hot reload: the old set stays visible until the new one is
// complete, and a failed reload never leaves a partial mix.
func (r *Registry) Replace(records []*ContractRecord) error {
	for _, record := range records {
		if record == nil {
			return fmt.Errorf("contract record cannot be nil")
		}
		if record.Name == "" {
			return fmt.Errorf("contract name cannot be empty")
		}
	}

	next := make(map[string]*ContractRecord, len(records))
	for _, record := range records {
		next[record.Name] = record
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = next
	r.loadTime = time.Now()
	r.updateVersion()
	return nil
}

// Get retrieves a contract record by name.
func (r *Registry) Get(name string) (*ContractRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[name]
	return record, ok
}

// Names returns all contract names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns a snapshot of all records, sorted by name.
func (r *Registry) All() []*ContractRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]*ContractRecord, 0, len(names))
	for _, name := range names {
		records = append(records, r.records[name])
	}
	return records
}

// Count returns the number of registered contracts.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records)
}

// Version returns the registry version, a hash over the registered
// contract identities. It changes on every registration or replacement.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.version
}

// LoadTime returns when the contract set was last replaced.
func (r *Registry) LoadTime() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.loadTime
}

// updateVersion recomputes the registry version hash.
// Callers must hold the write lock.
func (r *Registry) updateVersion() {
	h := sha256.New()

	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		record := r.records[name]
		h.Write([]byte(record.Name))
		h.Write([]byte(record.SourcePath))
		h.Write([]byte(record.LoadID))
	}

	r.version = fmt.Sprintf("%x", h.Sum(nil))[:16]
}
