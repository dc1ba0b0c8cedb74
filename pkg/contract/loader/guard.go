package loader

import (
	"path/filepath"
	"strings"
)

// validateIncludePath checks a raw include path against the sandbox policy.
// Absolute paths and paths containing a parent-directory component are
// rejected. The check runs on the textual path components, before any
// normalization or filesystem access, so a crafted path cannot smuggle a
// traversal through normalization.
func validateIncludePath(raw string) (string, error) {
	if raw == "" {
		return "", &LoadError{Path: raw, Message: "empty include path"}
	}

	if filepath.IsAbs(raw) || strings.HasPrefix(raw, "/") {
		return "", &SecurityError{IncludePath: raw, Reason: ReasonAbsolutePath}
	}

	// Split on both separator styles so a traversal cannot hide behind
	// a foreign separator on any platform.
	components := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, component := range components {
		if component == ".." {
			return "", &SecurityError{IncludePath: raw, Reason: ReasonPathTraversal}
		}
	}

	return raw, nil
}
