package ioutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCopyFileCtx(t *testing.T) {
	tests := []struct {
		name      string
		overwrite bool
		setup     func(t *testing.T, base string) (src, dst string)
		wantErr   string
		wantErrIs error
		wantBytes string
	}{
		{
			name: "basic_copy",
			setup: func(t *testing.T, base string) (string, string) {
				t.Helper()
				src := filepath.Join(base, "src.txt")
				writeFile(t, src, "hello copy")
				return src, filepath.Join(base, "dst.txt")
			},
			wantBytes: "hello copy",
		},
		{
			name: "missing_source",
			setup: func(t *testing.T, base string) (string, string) {
				t.Helper()
				return filepath.Join(base, "nope.txt"), filepath.Join(base, "dst.txt")
			},
			wantErrIs: os.ErrNotExist,
		},
		{
			name: "existing_destination_without_overwrite",
			setup: func(t *testing.T, base string) (string, string) {
				t.Helper()
				src := filepath.Join(base, "src.txt")
				dst := filepath.Join(base, "dst.txt")
				writeFile(t, src, "new")
				writeFile(t, dst, "old")
				return src, dst
			},
			wantErrIs: os.ErrExist,
		},
		{
			name:      "existing_destination_with_overwrite",
			overwrite: true,
			setup: func(t *testing.T, base string) (string, string) {
				t.Helper()
				src := filepath.Join(base, "src.txt")
				dst := filepath.Join(base, "dst.txt")
				writeFile(t, src, "new content")
				writeFile(t, dst, "this is much older content to be truncated")
				return src, dst
			},
			wantBytes: "new content",
		},
		{
			name:      "directory_destination_with_overwrite",
			overwrite: true,
			setup: func(t *testing.T, base string) (string, string) {
				t.Helper()
				src := filepath.Join(base, "src.txt")
				writeFile(t, src, "x")
				dir := filepath.Join(base, "adir")
				mustMkdirAll(t, dir)
				return src, dir
			},
			wantErr: "directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			src, dst := tt.setup(t, base)

			written, err := CopyFileCtx(context.Background(), src, dst, 0o600, tt.overwrite)
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
				t.Fatalf("CopyFileCtx: %v", err)
			}
			got, rerr := os.ReadFile(dst)
			if rerr != nil {
				t.Fatalf("read back: %v", rerr)
			}
			if string(got) != tt.wantBytes {
				t.Fatalf("content=%q want %q", got, tt.wantBytes)
			}
			if written != int64(len(tt.wantBytes)) {
				t.Fatalf("written=%d want %d", written, len(tt.wantBytes))
			}
		})
	}
}

func TestCopyFileCtx_CanceledContextCleansUp(t *testing.T) {
	base := t.TempDir()
	src := mustWriteFile(t, base, "big.dat", 512*1024)
	dst := filepath.Join(base, "dst.dat")

	_, err := CopyFileCtx(canceledContext(context.Background()), src, dst, 0o600, false)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
	if _, serr := os.Lstat(dst); !errors.Is(serr, os.ErrNotExist) {
		t.Fatalf("partial destination left behind: %v", serr)
	}
}
