package ioutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
)

func mustWriteFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	full := filepath.Join(dir, name)
	data := bytes.Repeat([]byte("x"), size)
	if err := os.WriteFile(full, data, 0o600); err != nil {
		t.Fatalf("failed to write file %q: %v", full, err)
	}
	return full
}

func mustSymlinkOrSkip(t *testing.T, oldname, newname string) {
	t.Helper()
	if err := os.Symlink(oldname, newname); err != nil {
		// Often EPERM in CI environments.
		t.Skipf("symlink not supported/allowed: %v", err)
	}
}

// Helper to write text files in tests.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write test file %q: %v", path, err)
	}
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): %v", path, err)
	}
}

// openPolicy builds an unrestricted policy rooted at base.
func openPolicy(t *testing.T, base string) fspolicy.FSPolicy {
	t.Helper()
	p, err := fspolicy.New(base, nil, false)
	if err != nil {
		t.Fatalf("fspolicy.New: %v", err)
	}
	return p
}

func rootedPolicy(t *testing.T, root string, blockSymlinks bool) fspolicy.FSPolicy {
	t.Helper()
	p, err := fspolicy.New(root, []string{root}, blockSymlinks)
	if err != nil {
		t.Fatalf("fspolicy.New: %v", err)
	}
	return p
}

// equalStringSets compares two slices order-independently.
func equalStringSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := slices.Clone(a), slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}

func canceledContext(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	cancel()
	return ctx
}

func ptrBool(b bool) *bool { return &b }
