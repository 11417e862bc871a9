//go:build !windows

package ioutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

func commitAtomicTempFile(tmpName, dst, parent string, perm fs.FileMode, overwrite bool) error {
	if overwrite {
		// Rename replaces the destination atomically on Unix.
		if err := os.Rename(tmpName, dst); err != nil {
			return err
		}
		_ = os.Chmod(dst, perm)
		_ = syncDirBestEffort(parent)
		return nil
	}

	// Hardlink is atomic and fails when dst already exists, which is exactly
	// the overwrite=false contract.
	err := os.Link(tmpName, dst)
	if err == nil {
		_ = os.Remove(tmpName)
		_ = os.Chmod(dst, perm)
		_ = syncDirBestEffort(parent)
		return nil
	}
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("file already exists: %w", os.ErrExist)
	}

	// Some filesystems reject hardlinks. Fall back to O_EXCL + copy, which
	// keeps the no-overwrite guarantee at the cost of atomicity.
	if err := copyTempExclusive(tmpName, dst, perm); err != nil {
		return err
	}
	_ = os.Remove(tmpName)
	_ = syncDirBestEffort(parent)
	return nil
}

func copyTempExclusive(tmpName, dst string, perm fs.FileMode) error {
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("file already exists: %w", os.ErrExist)
		}
		return err
	}

	fail := func(cause error) error {
		_ = out.Close()
		_ = os.Remove(dst)
		return cause
	}

	in, err := os.Open(tmpName)
	if err != nil {
		return fail(err)
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fail(err)
	}
	if err := out.Sync(); err != nil {
		return fail(err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}

	// Re-apply perms in case the umask stripped bits at create time.
	_ = os.Chmod(dst, perm)
	return nil
}

func syncDirBestEffort(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
