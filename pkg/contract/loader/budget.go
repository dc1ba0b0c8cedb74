package loader

const (
	// DefaultMaxDepth is the default maximum number of include hops
	// from the root document.
	DefaultMaxDepth = 10

	// DefaultMaxFileSize is the default maximum contract file size
	// in bytes (1 MiB).
	DefaultMaxFileSize int64 = 1 << 20
)

// Budget carries the resource limits for one load call.
// It is created once per top-level Load and read, never mutated, by every
// recursive resolution step.
type Budget struct {
	// MaxDepth is the maximum number of include hops; the root document
	// is at depth 0.
	MaxDepth int

	// MaxFileSize is the maximum size in bytes of any single file,
	// root or included.
	MaxFileSize int64
}

// DefaultBudget returns the default resource limits.
func DefaultBudget() Budget {
	return Budget{
		MaxDepth:    DefaultMaxDepth,
		MaxFileSize: DefaultMaxFileSize,
	}
}
