//go:build !windows

package fspolicy

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/stg34/llm-file-tools/internal/toolutil"
)

type rootAlias struct {
	link   string
	target string
}

// macOS ships root-level compatibility symlinks (/var -> /private/var and
// friends). These are treated as trusted and normalized to their targets.
var darwinRootAliases = []rootAlias{
	{"/var", "/private/var"},
	{"/tmp", "/private/tmp"},
	{"/etc", "/private/etc"},
	{"/bin", "/usr/bin"},
	{"/sbin", "/usr/sbin"},
	{"/lib", "/usr/lib"},
}

func lookupDarwinAlias(p string) (string, bool) {
	for _, a := range darwinRootAliases {
		if p == a.link {
			return a.target, true
		}
	}
	return "", false
}

func rejectDriveRelativePath(string) error {
	return nil
}

// applySystemRootAliases rewrites the known macOS compatibility prefixes to
// their canonical targets. Purely lexical: no filesystem access, no general
// symlink resolution.
func applySystemRootAliases(p string) string {
	if strings.TrimSpace(p) == "" {
		return p
	}
	clean := filepath.Clean(p)
	if runtime.GOOS != toolutil.GOOSDarwin {
		return clean
	}

	sep := string(os.PathSeparator)
	for _, a := range darwinRootAliases {
		if clean == a.link {
			return a.target
		}
		if strings.HasPrefix(clean, a.link+sep) {
			return a.target + clean[len(a.link):]
		}
	}
	return clean
}

// allowSystemSymlink reports whether cur is one of the trusted macOS root
// symlinks, verifying on disk that it still points at the expected target
// and that the target is a plain directory.
func allowSystemSymlink(cur string) (resolved string, ok bool, err error) {
	if runtime.GOOS != toolutil.GOOSDarwin {
		return "", false, nil
	}
	expected, found := lookupDarwinAlias(cur)
	if !found {
		return "", false, nil
	}

	target, rerr := os.Readlink(cur)
	if rerr != nil {
		return "", false, rerr
	}
	if !filepath.IsAbs(target) {
		// Readlink can return targets like "private/var".
		target = filepath.Join(filepath.Dir(cur), target)
	}
	if filepath.Clean(target) != expected {
		return "", false, nil
	}

	st, serr := os.Lstat(expected)
	if serr != nil {
		return "", false, serr
	}
	if st.Mode()&os.ModeSymlink != 0 || !st.IsDir() {
		return "", false, nil
	}
	return expected, true, nil
}
