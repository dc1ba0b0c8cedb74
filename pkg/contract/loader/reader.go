package loader

import (
	"os"
	"path/filepath"
	"unicode/utf8"
)

// readDocument reads a contract file within the size budget.
// The size check runs against file metadata before the file is read, so an
// oversized file is never buffered into memory. Directories and other
// non-regular files are treated as not found for loading purposes.
func readDocument(path string, budget Budget) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &LoadError{Path: path, Message: "file not found", Cause: err}
		}
		if os.IsPermission(err) {
			return "", &LoadError{Path: path, Message: "permission denied", Cause: err}
		}
		return "", &LoadError{Path: path, Message: "failed to access file", Cause: err}
	}

	if !info.Mode().IsRegular() {
		return "", &LoadError{Path: path, Message: "not a regular file"}
	}

	if info.Size() > budget.MaxFileSize {
		return "", &SizeError{Path: path, Size: info.Size(), MaxSize: budget.MaxFileSize}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	// The file may have grown between the stat and the read.
	if int64(len(data)) > budget.MaxFileSize {
		return "", &SizeError{Path: path, Size: int64(len(data)), MaxSize: budget.MaxFileSize}
	}

	if !utf8.Valid(data) {
		return "", &LoadError{Path: path, Message: "file contains invalid UTF-8 encoding"}
	}

	return string(data), nil
}

// canonicalPath normalizes a file path to its absolute canonical form,
// resolving symlinks so distinct spellings of the same file compare equal
// on the inclusion chain. If the file does not exist yet the absolute path
// is returned; the subsequent read reports the missing file.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}
