package fspolicy

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func mkDir(t *testing.T, p string) string {
	t.Helper()
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): %v", p, err)
	}
	return p
}

func mkFile(t *testing.T, p, content string) string {
	t.Helper()
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%q): %v", p, err)
	}
	return p
}

func mustPolicy(t *testing.T, workBaseDir string, allowedRoots []string, blockSymlinks bool) FSPolicy {
	t.Helper()
	p, err := New(workBaseDir, allowedRoots, blockSymlinks)
	if err != nil {
		t.Fatalf("New(%q, %v, %v): %v", workBaseDir, allowedRoots, blockSymlinks, err)
	}
	return p
}

// symlinkOK attempts the symlink and reports whether it was created.
// Windows often requires extra privileges; callers skip when false.
func symlinkOK(t *testing.T, target, link string) bool {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Logf("symlink unavailable: os.Symlink(%q, %q): %v (GOOS=%s)", target, link, err, runtime.GOOS)
		return false
	}
	return true
}

func requireIsErr(t *testing.T, err, want error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %v, got nil", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("errors.Is(err, %v)=false, err=%v", want, err)
	}
}

func requireDir(t *testing.T, p string) {
	t.Helper()
	st, err := os.Stat(p)
	if err != nil {
		t.Fatalf("Stat(%q): %v", p, err)
	}
	if !st.IsDir() {
		t.Fatalf("expected directory at %q", p)
	}
}

// canonAbs mirrors what New/ResolvePath do to expectation paths so tests hold
// on darwin (where /var and friends are aliased) and with symlinked temp dirs.
func canonAbs(t *testing.T, p string) string {
	t.Helper()
	abs, err := filepath.Abs(p)
	if err != nil {
		t.Fatalf("Abs(%q): %v", p, err)
	}
	return applySystemRootAliases(abs)
}
