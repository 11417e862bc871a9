package ioutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stg34/llm-file-tools/internal/toolutil"
)

func TestWriteFileAtomicBytes(t *testing.T) {
	tests := []struct {
		name          string
		overwrite     bool
		createParents bool
		maxNewDirs    int
		setup         func(t *testing.T, base string) string // returns input path
		wantErr       string                                 // substring, "" means nil
		wantErrIs     error
		wantBytes     string
	}{
		{
			name: "writes_new_file",
			setup: func(t *testing.T, base string) string {
				t.Helper()
				return "out.txt"
			},
			wantBytes: "payload",
		},
		{
			name: "missing_parent_errors",
			setup: func(t *testing.T, base string) string {
				t.Helper()
				return filepath.Join("no", "dir", "out.txt")
			},
			wantErrIs: os.ErrNotExist,
		},
		{
			name:          "creates_parents_when_asked",
			createParents: true,
			maxNewDirs:    4,
			setup: func(t *testing.T, base string) string {
				t.Helper()
				return filepath.Join("a", "b", "out.txt")
			},
			wantBytes: "payload",
		},
		{
			name: "existing_file_without_overwrite_errors",
			setup: func(t *testing.T, base string) string {
				t.Helper()
				writeFile(t, filepath.Join(base, "out.txt"), "old")
				return "out.txt"
			},
			wantErr:   "already exists",
			wantErrIs: os.ErrExist,
		},
		{
			name:      "existing_file_with_overwrite_replaced",
			overwrite: true,
			setup: func(t *testing.T, base string) string {
				t.Helper()
				writeFile(t, filepath.Join(base, "out.txt"), "old")
				return "out.txt"
			},
			wantBytes: "payload",
		},
		{
			name:      "directory_destination_errors",
			overwrite: true,
			setup: func(t *testing.T, base string) string {
				t.Helper()
				mustMkdirAll(t, filepath.Join(base, "adir"))
				return "adir"
			},
			wantErr: "directory",
		},
		{
			name:      "symlink_destination_refused",
			overwrite: true,
			setup: func(t *testing.T, base string) string {
				t.Helper()
				if runtime.GOOS == toolutil.GOOSWindows {
					t.Skip("symlink tests are unreliable on Windows CI")
				}
				writeFile(t, filepath.Join(base, "target.txt"), "t")
				mustSymlinkOrSkip(t, filepath.Join(base, "target.txt"), filepath.Join(base, "link.txt"))
				return "link.txt"
			},
			wantErr: "symlink",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			p := openPolicy(t, base)

			dst, err := WriteFileAtomicBytes(
				p, tt.setup(t, base), []byte("payload"),
				0o600, tt.overwrite, tt.createParents, tt.maxNewDirs,
			)
			if tt.wantErr != "" || tt.wantErrIs != nil {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err=%v want substring %q", err, tt.wantErr)
				}
				if tt.wantErrIs != nil && !errors.Is(err, tt.wantErrIs) {
					t.Fatalf("err=%v want errors.Is %v", err, tt.wantErrIs)
				}
				return
			}
			if err != nil {
				t.Fatalf("WriteFileAtomicBytes: %v", err)
			}

			got, rerr := os.ReadFile(dst)
			if rerr != nil {
				t.Fatalf("read back: %v", rerr)
			}
			if string(got) != tt.wantBytes {
				t.Fatalf("content=%q want %q", got, tt.wantBytes)
			}

			// No temp leftovers in the destination directory.
			entries, derr := os.ReadDir(filepath.Dir(dst))
			if derr != nil {
				t.Fatalf("read dir: %v", derr)
			}
			for _, e := range entries {
				if strings.HasPrefix(e.Name(), ".tmp-filetools-") {
					t.Fatalf("leftover temp file %q", e.Name())
				}
			}
		})
	}
}
