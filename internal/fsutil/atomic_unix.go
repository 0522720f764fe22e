//go:build !windows

package fsutil

import (
	"os"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic writes data to a temporary file next to filename and renames
// it into place, so readers see either the old or the new content.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
