package ioutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// CopyDirCtx recursively copies the directory tree rooted at src into dst.
// Dst must not exist yet (mirrors the strictness of a fresh tree copy).
// Special files are skipped; symlinks are skipped when skipSymlinks is true
// and re-created as links otherwise. Directories use the same iterative
// work-list shape as the search walk.
//
// NOTE: This is a raw IO helper; callers should resolve/enforce policy before calling.
func CopyDirCtx(ctx context.Context, src, dst string, skipSymlinks bool) (filesCopied int, err error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	st, err := os.Lstat(src)
	if err != nil {
		return 0, err
	}
	if !st.IsDir() {
		return 0, fmt.Errorf("source is not a directory: %s", src)
	}
	if _, err := os.Lstat(dst); err == nil {
		return 0, fmt.Errorf("destination already exists: %w", os.ErrExist)
	} else if !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}

	type job struct{ from, to string }
	pending := []job{{from: src, to: dst}}

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return filesCopied, err
		}

		j := pending[0]
		pending = pending[1:]

		srcInfo, err := os.Lstat(j.from)
		if err != nil {
			return filesCopied, err
		}
		if err := os.Mkdir(j.to, srcInfo.Mode().Perm()|0o200); err != nil {
			return filesCopied, err
		}

		entries, err := os.ReadDir(j.from)
		if err != nil {
			return filesCopied, err
		}

		for _, entry := range entries {
			from := filepath.Join(j.from, entry.Name())
			to := filepath.Join(j.to, entry.Name())

			if (entry.Type() & os.ModeSymlink) != 0 {
				if skipSymlinks {
					continue
				}
				target, rerr := os.Readlink(from)
				if rerr != nil {
					return filesCopied, rerr
				}
				if serr := os.Symlink(target, to); serr != nil {
					return filesCopied, serr
				}
				continue
			}

			if entry.IsDir() {
				pending = append(pending, job{from: from, to: to})
				continue
			}
			if !entry.Type().IsRegular() {
				continue
			}

			info, ierr := entry.Info()
			perm := os.FileMode(0o600)
			if ierr == nil {
				perm = info.Mode().Perm()
			}
			if _, cerr := CopyFileCtx(ctx, from, to, perm, false); cerr != nil {
				return filesCopied, cerr
			}
			filesCopied++
		}
	}

	return filesCopied, nil
}
