package ioutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/internal/logutil"
)

// maxContentProbeBytes caps how much of a single file the content phase reads.
// Larger files can still match by name; their content is never probed.
const maxContentProbeBytes int64 = 1 * 1024 * 1024 // 1 MB guard

// visitOutcome tags the result of evaluating one regular file against the
// keyword. Keeping the skip policy as an explicit value (instead of a
// swallowed error) makes it auditable and testable.
type visitOutcome int

const (
	visitNoMatch visitOutcome = iota
	visitMatchedName
	visitMatchedContent
	visitSkippedUnreadable
)

// SearchResult reports the outcome of one search walk.
type SearchResult struct {
	// Matches holds absolute paths of matching regular files in traversal order.
	Matches []string
	// ReachedLimit is true when maxResults stopped the walk early.
	ReachedLimit bool
	// SkippedUnreadable counts files whose content could not be probed
	// (binary, permission denied, oversized, or deleted mid-walk).
	SkippedUnreadable int
}

// SearchFiles walks root (default ".") and returns every regular file whose
// base name or UTF-8 text content contains keyword as a case-sensitive
// substring. maxResults <= 0 means "no limit".
//
// Traversal is an iterative FIFO work-list of directories; each directory's
// entries come from os.ReadDir (sorted by filename), so the result sequence
// is deterministic for an unchanged tree. A file that matches by name is
// never opened for content. Unreadable files and unlistable subdirectories
// are skipped, never fatal. A missing root yields an empty result and a nil
// error; so does a root that is not a directory.
//
// FSPolicy enforcement:
//   - root is resolved via policy (base dir + allowed roots)
//   - if policy.BlockSymlinks == true: symlink entries are skipped
//   - if allowedRoots is set: each candidate file is policy-checked to avoid
//     symlink/junction sandbox escapes.
func SearchFiles(
	ctx context.Context,
	p fspolicy.FSPolicy,
	root, keyword string,
	maxResults int,
) (*SearchResult, error) {
	if keyword == "" {
		return nil, errors.New("keyword is required")
	}

	rootAbs, err := p.ResolvePath(root, ".")
	if err != nil {
		return nil, err
	}

	res := &SearchResult{Matches: []string{}}

	st, err := os.Lstat(rootAbs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Missing root is a normal empty result, consistent with the
			// tolerant style of the rest of the toolkit.
			return res, nil
		}
		return nil, err
	}
	if (st.Mode()&os.ModeSymlink) != 0 && !p.BlockSymlinks() {
		if resolved, rerr := filepath.EvalSymlinks(rootAbs); rerr == nil && resolved != "" {
			rootAbs = filepath.Clean(resolved)
			st, err = os.Lstat(rootAbs)
			if err != nil {
				return res, nil
			}
		}
	}
	if !st.IsDir() {
		// A file root contains zero entries.
		return res, nil
	}

	limit := maxResults
	if limit <= 0 {
		limit = int(^uint(0) >> 1) // effectively "infinite"
	}

	// Explicit work-list instead of language-level recursion: depth is
	// bounded only by the real tree, not the goroutine stack.
	pending := []string{rootAbs}

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := pending[0]
		pending = pending[1:]

		entries, derr := os.ReadDir(dir)
		if derr != nil {
			// A vanished or unreadable subdirectory never aborts the walk.
			logutil.Debug("search: skipping unlistable directory", "dir", dir, "err", derr)
			continue
		}

		for _, entry := range entries {
			if len(res.Matches) >= limit {
				res.ReachedLimit = true
				return res, nil
			}

			if p.BlockSymlinks() && (entry.Type()&os.ModeSymlink) != 0 {
				continue
			}

			path := filepath.Join(dir, entry.Name())

			if entry.IsDir() {
				pending = append(pending, path)
				continue
			}
			if !entry.Type().IsRegular() {
				continue
			}

			// Defense-in-depth: if sandbox roots are set, policy-check each
			// candidate (catches symlink/junction escapes when symlinks are allowed).
			if p.HasAllowedRoots() {
				if _, rerr := p.ResolvePath(path, ""); rerr != nil {
					continue
				}
			}

			switch evaluateFile(entry, path, keyword) {
			case visitMatchedName, visitMatchedContent:
				res.Matches = append(res.Matches, path)
			case visitSkippedUnreadable:
				res.SkippedUnreadable++
			case visitNoMatch:
			}
		}
	}

	if len(res.Matches) >= limit {
		res.ReachedLimit = true
	}
	return res, nil
}

// evaluateFile applies the match policy to one regular file: name first,
// content only when the name test fails.
func evaluateFile(entry os.DirEntry, path, keyword string) visitOutcome {
	if strings.Contains(entry.Name(), keyword) {
		return visitMatchedName
	}

	info, err := entry.Info()
	if err != nil {
		// Deleted between listing and stat; treat like a read failure.
		return visitSkippedUnreadable
	}
	if info.Size() > maxContentProbeBytes {
		return visitSkippedUnreadable
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return visitSkippedUnreadable
	}

	sample := data[:min(len(data), 4096)]
	if !isProbablyTextSample(sample) || !utf8.Valid(data) {
		return visitSkippedUnreadable
	}

	if strings.Contains(string(data), keyword) {
		return visitMatchedContent
	}
	return visitNoMatch
}
