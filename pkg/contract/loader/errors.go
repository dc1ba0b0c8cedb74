package loader

import (
	"fmt"
	"strings"
)

// LoadError represents a file system failure during contract loading.
// This covers missing files, non-regular files, permission problems,
// read failures, and invalid encodings.
type LoadError struct {
	// Path is the path to the file that failed to load
	Path string

	// Message describes the error
	Message string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load contract file %q: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load contract file %q: %s", e.Path, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// SecurityReason identifies why an include path was rejected.
type SecurityReason string

const (
	// ReasonAbsolutePath indicates the include path was absolute.
	ReasonAbsolutePath SecurityReason = "absolute path"

	// ReasonPathTraversal indicates the include path contained a parent
	// directory ("..") component.
	ReasonPathTraversal SecurityReason = "parent directory traversal"
)

// SecurityError represents rejection of an unsafe include path.
// It is returned before any filesystem access for the offending path.
type SecurityError struct {
	// IncludePath is the raw include path as written in the document
	IncludePath string

	// Reason identifies the policy violation
	Reason SecurityReason
}

// Error implements the error interface.
func (e *SecurityError) Error() string {
	return fmt.Sprintf("unsafe include path %q: %s not allowed", e.IncludePath, e.Reason)
}

// CircularIncludeError represents a cycle in the include graph.
// This covers true cycles (a -> b -> a) and direct self-references (a -> a).
type CircularIncludeError struct {
	// Path is the canonical path that was included a second time
	Path string

	// Chain is the inclusion chain at the time the cycle was detected,
	// ending with the repeated path
	Chain []string
}

// Error implements the error interface.
func (e *CircularIncludeError) Error() string {
	if len(e.Chain) > 0 {
		return fmt.Sprintf("circular include detected: %s", strings.Join(e.Chain, " -> "))
	}
	return fmt.Sprintf("circular include detected at %q", e.Path)
}

// DepthError represents an include chain that exceeds the depth budget.
type DepthError struct {
	// Depth is the depth the next include would have reached
	Depth int

	// MaxDepth is the configured maximum
	MaxDepth int
}

// Error implements the error interface.
func (e *DepthError) Error() string {
	return fmt.Sprintf("include depth %d exceeds maximum %d", e.Depth, e.MaxDepth)
}

// SizeError represents a contract file that exceeds the size budget.
// The file is never read into memory; the size is taken from file metadata.
type SizeError struct {
	// Path is the path to the oversized file
	Path string

	// Size is the file size in bytes
	Size int64

	// MaxSize is the configured maximum in bytes
	MaxSize int64
}

// Error implements the error interface.
func (e *SizeError) Error() string {
	return fmt.Sprintf("contract file %q too large: %d bytes exceeds maximum %d bytes", e.Path, e.Size, e.MaxSize)
}

// ValidationError represents a structurally invalid root document.
type ValidationError struct {
	// Message describes the validation failure
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}
