//go:build !windows

package fileutil

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic replaces path with data: the content goes to a temporary
// file in the same directory, is synced, then renamed over path. On failure
// the previous content of path is left untouched. An existing file keeps its
// permissions; a new one gets perm (minus the umask).
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := renameio.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
