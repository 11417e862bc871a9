package fspolicy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var errPathMustBeAbsolute = errors.New("path must be absolute")

func ensureDirExists(p string) error {
	st, err := os.Stat(p)
	switch {
	case err != nil:
		return fmt.Errorf("stat dir: %w", err)
	case !st.IsDir():
		return fmt.Errorf("path is not a directory: %s", p)
	default:
		return nil
	}
}

// ensureWithinRoots reports whether p sits under any of roots. An empty
// roots slice means unrestricted.
func ensureWithinRoots(p string, roots []string) error {
	if len(roots) == 0 {
		return nil
	}
	for _, r := range roots {
		if ok, err := isPathWithinRoot(r, p); err == nil && ok {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrOutsideAllowedRoots, p)
}

func isPathWithinRoot(root, p string) (bool, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false, err
	}
	rel = filepath.Clean(rel)
	// rel == "." means p is the root itself. Anything starting with ".."
	// escapes the root.
	switch {
	case rel == ".":
		return true, nil
	case rel == "..":
		return false, nil
	case strings.HasPrefix(rel, ".."+string(os.PathSeparator)):
		return false, nil
	}
	return true, nil
}

// normalizePath trims, rejects empty input and NUL bytes, converts slashes
// and cleans the result.
func normalizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" || strings.ContainsRune(p, 0) {
		return "", ErrInvalidPath
	}
	return filepath.Clean(filepath.FromSlash(p)), nil
}

// evalSymlinksBestEffort resolves symlinks in p. When p (or some suffix of
// it) does not exist yet, the longest existing ancestor is resolved and the
// missing tail is re-appended lexically.
func evalSymlinksBestEffort(p string) string {
	p = filepath.Clean(p)

	probe := p
	var tail []string

	for i := 0; i < 64; i++ {
		resolved, err := filepath.EvalSymlinks(probe)
		if err == nil && resolved != "" {
			resolved = filepath.Clean(resolved)
			if len(tail) == 0 {
				return resolved
			}
			return filepath.Join(append([]string{resolved}, tail...)...)
		}

		parent := filepath.Dir(probe)
		if parent == probe {
			// Hit the filesystem root without resolving anything.
			return p
		}
		tail = append([]string{filepath.Base(probe)}, tail...)
		probe = parent
	}
	return p
}

// dedupeSorted removes adjacent duplicates in place. Input must be sorted.
func dedupeSorted(in []string) []string {
	if len(in) <= 1 {
		return in
	}
	w := 1
	for i := 1; i < len(in); i++ {
		if in[i] != in[w-1] {
			in[w] = in[i]
			w++
		}
	}
	return in[:w]
}
