//go:build windows

package ioutil

import (
	"fmt"
	"io/fs"
	"os"
	"time"
)

const renameRetryAttempts = 6

func commitAtomicTempFile(tmpName, dst, parent string, perm fs.FileMode, overwrite bool) error {
	_ = parent // no directory fsync on Windows

	if !overwrite {
		// Windows rename refuses to replace an existing file, which matches
		// the overwrite=false contract directly.
		err := os.Rename(tmpName, dst)
		if err != nil {
			if _, stErr := os.Lstat(dst); stErr == nil {
				return fmt.Errorf("file already exists: %w", os.ErrExist)
			}
			return err
		}
		_ = os.Chmod(dst, perm)
		return nil
	}

	// Antivirus and indexer handles can briefly block replacement, so retry
	// the remove+rename with a growing pause.
	var lastErr error
	for attempt := 1; attempt <= renameRetryAttempts; attempt++ {
		lastErr = os.Rename(tmpName, dst)
		if lastErr == nil {
			_ = os.Chmod(dst, perm)
			return nil
		}
		if _, stErr := os.Lstat(dst); stErr == nil {
			_ = os.Remove(dst)
		}
		time.Sleep(time.Duration(attempt) * 15 * time.Millisecond)
	}
	return lastErr
}

func syncDirBestEffort(dir string) error {
	_ = dir
	return nil
}
