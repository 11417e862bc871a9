// Package fspolicy centralizes path resolution and filesystem hardening for
// the file tools: work-base-relative resolution, allowed-roots confinement
// and optional symlink blocking.
package fspolicy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrInvalidPath covers empty or whitespace-only paths and paths with NUL bytes.
	ErrInvalidPath = errors.New("invalid path")

	// ErrOutsideAllowedRoots means the canonicalized path is under none of the
	// configured roots.
	ErrOutsideAllowedRoots = errors.New("path is outside allowed roots")

	// ErrSymlinkDisallowed means the policy refused to traverse or operate on a symlink.
	ErrSymlinkDisallowed = errors.New("symlinks are disallowed by policy")
)

// FSPolicy is an immutable value capturing the sandbox configuration.
//
// Rules:
//   - empty allowedRoots permits any path
//   - relative inputs resolve against workBaseDir
//   - the allowed-roots check runs on a best-effort symlink-resolved path,
//     while ResolvePath returns the lexical absolute path so later
//     Lstat-based checks still see symlink inputs
//   - with blockSymlinks, traversal refuses symlink components and file
//     operations refuse symlink files
type FSPolicy struct {
	allowedRoots  []string
	workBaseDir   string
	blockSymlinks bool
}

// New builds a policy. Roots and the base dir are canonicalized and must
// exist. An empty workBaseDir falls back to allowedRoots[0] when roots are
// set, otherwise to the process working directory.
func New(workBaseDir string, allowedRoots []string, blockSymlinks bool) (FSPolicy, error) {
	if blockSymlinks {
		probe := FSPolicy{blockSymlinks: true}
		if strings.TrimSpace(workBaseDir) != "" {
			if err := probe.verifyDirNoSymlinkAbs(workBaseDir); err != nil {
				return FSPolicy{}, fmt.Errorf("work base dir %q violates symlink policy: %w", workBaseDir, err)
			}
		}
		for _, r := range allowedRoots {
			if err := probe.verifyDirNoSymlinkAbs(r); err != nil {
				return FSPolicy{}, fmt.Errorf("allowed root %q violates symlink policy: %w", r, err)
			}
		}
	}

	roots, err := canonicalizeAllowedRoots(allowedRoots)
	if err != nil {
		return FSPolicy{}, err
	}

	base := strings.TrimSpace(workBaseDir)
	switch {
	case base != "":
	case len(roots) > 0:
		base = roots[0]
	default:
		cwd, e := os.Getwd()
		if e != nil {
			return FSPolicy{}, e
		}
		base = cwd
	}

	baseCanon, err := canonicalizeExistingDir(base)
	if err != nil {
		return FSPolicy{}, fmt.Errorf("invalid work base dir %q: %w", workBaseDir, err)
	}
	if err := ensureWithinRoots(baseCanon, roots); err != nil {
		return FSPolicy{}, fmt.Errorf("work base dir %q: %w", baseCanon, err)
	}

	return FSPolicy{
		allowedRoots:  roots,
		workBaseDir:   baseCanon,
		blockSymlinks: blockSymlinks,
	}, nil
}

func (p FSPolicy) WorkBaseDir() string   { return p.workBaseDir }
func (p FSPolicy) BlockSymlinks() bool   { return p.blockSymlinks }
func (p FSPolicy) HasAllowedRoots() bool { return len(p.allowedRoots) > 0 }

// AllowedRoots returns a copy so callers cannot mutate the policy.
func (p FSPolicy) AllowedRoots() []string {
	if len(p.allowedRoots) == 0 {
		return nil
	}
	out := make([]string, len(p.allowedRoots))
	copy(out, p.allowedRoots)
	return out
}

// ResolvePath turns inputPath (relative or absolute) into an absolute
// lexical path confined to the allowed roots. defaultIfEmpty substitutes for
// a blank inputPath.
func (p FSPolicy) ResolvePath(inputPath, defaultIfEmpty string) (string, error) {
	s := strings.TrimSpace(inputPath)
	if s == "" {
		s = strings.TrimSpace(defaultIfEmpty)
	}

	norm, err := normalizePath(s)
	if err != nil {
		return "", err
	}
	if err := rejectDriveRelativePath(norm); err != nil {
		return "", err
	}

	if !filepath.IsAbs(norm) {
		base := strings.TrimSpace(p.workBaseDir)
		if base == "" {
			cwd, e := os.Getwd()
			if e != nil {
				return "", e
			}
			base = cwd
		}
		norm = filepath.Join(base, norm)
	}

	absLex, err := filepath.Abs(norm)
	if err != nil {
		return "", err
	}
	absLex = applySystemRootAliases(filepath.Clean(absLex))

	// The confinement check uses the symlink-resolved form so links cannot
	// escape the roots; the lexical form is what we hand back.
	absCheck := evalSymlinksBestEffort(absLex)
	if err := ensureWithinRoots(absCheck, p.allowedRoots); err != nil {
		return "", fmt.Errorf("path %q (resolved to %q): %w", absLex, absCheck, err)
	}
	return absLex, nil
}

// VerifyDirResolved checks that an already-resolved absolute path is a
// directory. With BlockSymlinks it also refuses symlink components.
func (p FSPolicy) VerifyDirResolved(absDir string) error {
	d, err := requireAbs(absDir)
	if err != nil {
		return err
	}
	if p.blockSymlinks {
		return p.verifyDirNoSymlinkAbs(d)
	}

	st, err := os.Stat(d)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("not a directory: %s", d)
	}
	return nil
}

// EnsureDirResolved creates an already-resolved absolute directory and any
// missing parents. With BlockSymlinks the components are created one at a
// time, symlink traversal is refused and maxNewDirs caps how many new
// directories may be made (0 means unlimited); the created count is only
// meaningful in that mode.
func (p FSPolicy) EnsureDirResolved(absDir string, maxNewDirs int) (created int, err error) {
	d, err := requireAbs(absDir)
	if err != nil {
		return 0, err
	}
	if p.blockSymlinks {
		return p.walkDirNoSymlinkAbs(d, true, maxNewDirs)
	}
	// Counting new dirs accurately without the component walk would need
	// TOCTOU-prone stat logic, so we don't.
	return 0, os.MkdirAll(d, 0o755)
}

// RequireExistingRegularFileResolved checks that an already-resolved
// absolute path names an existing regular file. With BlockSymlinks both
// symlink parent components and a symlink final file are refused.
func (p FSPolicy) RequireExistingRegularFileResolved(absPath string) (fs.FileInfo, error) {
	ap, err := requireAbs(absPath)
	if err != nil {
		return nil, err
	}

	if !p.blockSymlinks {
		st, err := os.Stat(ap)
		if err != nil {
			return nil, err
		}
		if err := requireRegularFile(st, ap); err != nil {
			return nil, err
		}
		return st, nil
	}

	if parent := filepath.Dir(ap); parent != "" && parent != "." {
		if err := p.verifyDirNoSymlinkAbs(parent); err != nil {
			return nil, err
		}
	}
	st, err := os.Lstat(ap)
	if err != nil {
		return nil, err
	}
	if st.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("%w: refusing to operate on symlink file: %s", ErrSymlinkDisallowed, ap)
	}
	if err := requireRegularFile(st, ap); err != nil {
		return nil, err
	}
	return st, nil
}

func requireRegularFile(st fs.FileInfo, ap string) error {
	if st.IsDir() {
		return fmt.Errorf("expected file but got directory: %s", ap)
	}
	if !st.Mode().IsRegular() {
		return fmt.Errorf("expected regular file: %s", ap)
	}
	return nil
}

func (p FSPolicy) verifyDirNoSymlinkAbs(dir string) error {
	_, err := p.walkDirNoSymlinkAbs(dir, false, 0)
	return err
}

// walkDirNoSymlinkAbs steps through dir one component at a time, refusing
// symlinks except the trusted platform aliases. With createMissing it
// Mkdirs absent components, capped at maxNewDirs (0 means unlimited).
func (p FSPolicy) walkDirNoSymlinkAbs(dir string, createMissing bool, maxNewDirs int) (created int, err error) {
	d, err := normalizePath(dir)
	if err != nil {
		return 0, err
	}
	if d == "." {
		return 0, nil
	}
	if !filepath.IsAbs(d) {
		return 0, errPathMustBeAbsolute
	}

	vol := filepath.VolumeName(d)
	sep := string(os.PathSeparator)

	cur := sep
	if vol != "" {
		cur = vol + sep
	}

	for _, part := range splitPathComponents(d[len(vol):], sep) {
		cur = filepath.Join(cur, part)

		st, lerr := os.Lstat(cur)
		switch {
		case lerr == nil && st.Mode()&os.ModeSymlink != 0:
			resolved, ok, aerr := allowSystemSymlink(cur)
			if aerr != nil {
				return created, aerr
			}
			if !ok {
				return created, fmt.Errorf(
					"%w: refusing to traverse symlink path component: %s",
					ErrSymlinkDisallowed, cur,
				)
			}
			cur = resolved

		case lerr == nil && !st.IsDir():
			return created, fmt.Errorf("path component is not a directory: %s", cur)

		case lerr == nil:
			// Existing plain directory, keep walking.

		case !errors.Is(lerr, os.ErrNotExist) || !createMissing:
			return created, fmt.Errorf("stat error: %w", lerr)

		default:
			if maxNewDirs > 0 && created >= maxNewDirs {
				return created, fmt.Errorf("too many parent directories to create (max %d)", maxNewDirs)
			}
			if merr := os.Mkdir(cur, 0o755); merr != nil {
				return created, merr
			}
			created++
		}
	}

	if !createMissing {
		st, serr := os.Stat(d)
		if serr != nil {
			return created, serr
		}
		if !st.IsDir() {
			return created, fmt.Errorf("not a directory: %s", d)
		}
	}
	return created, nil
}

func splitPathComponents(rest, sep string) []string {
	var parts []string
	for _, part := range strings.Split(strings.TrimLeft(rest, sep), sep) {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}

func requireAbs(p string) (string, error) {
	d, err := normalizePath(p)
	if err != nil {
		return "", err
	}
	if d == "." {
		return "", ErrInvalidPath
	}
	if !filepath.IsAbs(d) {
		return "", errPathMustBeAbsolute
	}
	return applySystemRootAliases(filepath.Clean(d)), nil
}

func canonicalizeAllowedRoots(roots []string) ([]string, error) {
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		cr, err := canonicalizeExistingDir(r)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed root %q: %w", r, err)
		}
		out = append(out, cr)
	}
	if len(out) == 0 {
		return nil, nil
	}
	sort.Strings(out)
	return dedupeSorted(out), nil
}

func canonicalizeExistingDir(p string) (string, error) {
	abs, err := canonicalizeDir(p)
	if err != nil {
		return "", err
	}
	if err := ensureDirExists(abs); err != nil {
		return "", err
	}
	return abs, nil
}

func canonicalizeDir(p string) (string, error) {
	if strings.ContainsRune(p, '\x00') {
		return "", errors.New("path contains NUL byte")
	}
	abs, err := filepath.Abs(filepath.Clean(filepath.FromSlash(strings.TrimSpace(p))))
	if err != nil {
		return "", err
	}
	return evalSymlinksBestEffort(applySystemRootAliases(abs)), nil
}
