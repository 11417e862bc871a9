package ioutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
)

const writeTempPattern = ".tmp-filetools-*"

// WriteFileAtomicBytes resolves path through the policy and writes data via
// a same-directory temp file followed by an atomic commit.
//
//   - createParents=false: the parent directory must already exist
//   - createParents=true: missing parents are created, at most maxNewDirs
//   - overwrite=false: an existing destination is an error, enforced again
//     at commit time to close the race
//
// The resolved absolute destination is returned even on most error paths so
// callers can put it in messages.
func WriteFileAtomicBytes(
	p fspolicy.FSPolicy,
	path string,
	data []byte,
	perm fs.FileMode,
	overwrite bool,
	createParents bool,
	maxNewDirs int,
) (dst string, err error) {
	dst, err = p.ResolvePath(path, "")
	if err != nil {
		return "", err
	}

	parent := filepath.Dir(dst)
	if createParents {
		if _, err := p.EnsureDirResolved(parent, maxNewDirs); err != nil {
			return dst, err
		}
	} else if err := p.VerifyDirResolved(parent); err != nil {
		return dst, err
	}

	if err := checkWriteDestination(dst, overwrite); err != nil {
		return dst, err
	}

	tmpName, err := writeTempFile(parent, data, perm)
	if err != nil {
		return dst, err
	}

	if err := commitAtomicTempFile(tmpName, dst, parent, perm, overwrite); err != nil {
		_ = os.Remove(tmpName)
		return dst, err
	}
	// Depending on the commit strategy the temp file may already be gone.
	_ = os.Remove(tmpName)
	return dst, nil
}

// checkWriteDestination validates a pre-existing destination. Writing
// through a symlink is refused regardless of policy; its meaning differs
// across platforms.
func checkWriteDestination(dst string, overwrite bool) error {
	st, err := os.Lstat(dst)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	switch {
	case st.IsDir():
		return fmt.Errorf("path is a directory, not a file: %s", dst)
	case st.Mode()&os.ModeSymlink != 0:
		return fmt.Errorf("refusing to write to symlink destination: %s", dst)
	case !st.Mode().IsRegular():
		return fmt.Errorf("refusing to write to non-regular file: %s", dst)
	case !overwrite:
		return fmt.Errorf("file already exists: %w", os.ErrExist)
	}
	return nil
}

func writeTempFile(dir string, data []byte, perm fs.FileMode) (string, error) {
	tmp, err := os.CreateTemp(dir, writeTempPattern)
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()

	fail := func(cause error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", cause
	}

	_ = tmp.Chmod(perm)

	n, err := tmp.Write(data)
	if err != nil {
		return fail(err)
	}
	if n != len(data) {
		return fail(fmt.Errorf("short write: wrote %d bytes, expected %d", n, len(data)))
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", err
	}
	return tmpName, nil
}
