// Package fsutil holds small file helpers shared by the theme store and the editor sync.
package fsutil

import (
	"os"
	"path/filepath"
)

// DefaultFileMode is used when a replaced file does not exist yet.
const DefaultFileMode os.FileMode = 0o644

// ModeOr returns the permission bits of path, or fallback when it cannot be stat'ed.
func ModeOr(path string, fallback os.FileMode) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return fallback
	}
	return info.Mode().Perm()
}

// ReplaceFile creates the parent directory if needed and atomically replaces
// path with data, keeping the existing permission bits.
func ReplaceFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return WriteFileAtomic(path, data, ModeOr(path, DefaultFileMode))
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
