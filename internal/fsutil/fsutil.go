// Package fsutil provides small filesystem helpers shared by the release
// pipeline. This package has no dependencies so it can be imported anywhere.
package fsutil

import (
	"fmt"
	"os"
)

// WriteFileAtomic writes data to path using a temp file + rename so a crash
// mid-write never leaves a truncated file behind. The temp file lives next
// to the target so the rename stays on one filesystem.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
