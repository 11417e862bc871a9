//go:build windows

package fspolicy

import (
	"errors"
	"path/filepath"
	"strings"
)

var errWindowsDriveRelativePath = errors.New(
	"windows drive-relative paths like `C:foo` are not supported; use `C:\\foo` or a relative path without a drive letter",
)

// rejectDriveRelativePath refuses the `C:foo` form, which resolves against
// the per-drive working directory and rarely means what the caller intended.
func rejectDriveRelativePath(p string) error {
	if filepath.VolumeName(p) != "" && !filepath.IsAbs(p) {
		return errWindowsDriveRelativePath
	}
	return nil
}

func applySystemRootAliases(p string) string {
	if strings.TrimSpace(p) == "" {
		return p
	}
	return filepath.Clean(p)
}

// allowSystemSymlink has no trusted symlink set on Windows.
func allowSystemSymlink(string) (resolved string, ok bool, err error) {
	return "", false, nil
}
