package fstool

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/internal/toolutil"
)

func mustNewFSTool(t *testing.T, opts ...FSToolOption) *FSTool {
	t.Helper()
	ft, err := NewFSTool(opts...)
	if err != nil {
		t.Fatalf("NewFSTool: %v", err)
	}
	return ft
}

// testPolicy builds an unrestricted policy rooted at base for package-level calls.
func testPolicy(t *testing.T, base string) fspolicy.FSPolicy {
	t.Helper()
	p, err := fspolicy.New(base, nil, false)
	if err != nil {
		t.Fatalf("fspolicy.New: %v", err)
	}
	return p
}

func canceledContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func mustWriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile(%q): %v", path, err)
	}
}

func mustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%q): %v", path, err)
	}
	return b
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): %v", path, err)
	}
}

func mustSymlinkOrSkip(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		// Often EPERM on Windows or in restricted CI.
		t.Skipf("symlink not supported/allowed: %v", err)
	}
}

func decodeBase64OrFail(t *testing.T, s string) []byte {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	return b
}

// skipIfRoot skips permission-based tests that are meaningless when the
// process can read anything (uid 0, or Windows ACL semantics).
func skipIfRoot(t *testing.T) {
	t.Helper()
	if runtime.GOOS == toolutil.GOOSWindows {
		t.Skip("chmod-based unreadability is not reliable on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}
}

// canonForPolicyExpectations normalizes an expected path the same way the
// policy does, so comparisons hold on macOS where t.TempDir returns /var/...
// but the policy reports /private/var/... paths.
func canonForPolicyExpectations(p string) string {
	p = filepath.Clean(p)
	if resolved, err := filepath.EvalSymlinks(p); err == nil && resolved != "" {
		p = filepath.Clean(resolved)
	}
	if runtime.GOOS != toolutil.GOOSDarwin {
		return p
	}

	sep := string(os.PathSeparator)
	for from, to := range map[string]string{
		"/var": "/private/var",
		"/tmp": "/private/tmp",
		"/etc": "/private/etc",
	} {
		if p == from {
			return to
		}
		if strings.HasPrefix(p, from+sep) {
			return to + p[len(from):]
		}
	}
	return p
}

func wantErrContains(substr string) func(error) bool {
	return func(err error) bool {
		return err != nil && strings.Contains(err.Error(), substr)
	}
}

func wantErrIs(target error) func(error) bool {
	return func(err error) bool {
		return errors.Is(err, target)
	}
}

func wantErrAny(err error) bool  { return err != nil }
func wantErrNone(err error) bool { return err == nil }
