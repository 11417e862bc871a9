package fstool

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stg34/llm-file-tools/internal/toolutil"
)

func TestPathKind(t *testing.T) {
	tests := []struct {
		name          string
		blockSymlinks bool
		ctx           func(t *testing.T) context.Context
		args          func(t *testing.T, base string) PathKindArgs
		wantErr       func(error) bool

		wantExists bool
		wantKind   string
	}{
		{
			name: "context_canceled",
			ctx:  canceledContext,
			args: func(t *testing.T, base string) PathKindArgs {
				t.Helper()
				return PathKindArgs{Path: "x"}
			},
			wantErr: wantErrIs(context.Canceled),
		},
		{
			name: "missing_path_is_exists_false",
			args: func(t *testing.T, base string) PathKindArgs {
				t.Helper()
				return PathKindArgs{Path: "nope"}
			},
		},
		{
			name: "regular_file_is_file",
			args: func(t *testing.T, base string) PathKindArgs {
				t.Helper()
				mustWriteFile(t, filepath.Join(base, "f.txt"), []byte("x"))
				return PathKindArgs{Path: "f.txt"}
			},
			wantExists: true,
			wantKind:   PathKindFile,
		},
		{
			name: "directory_is_directory",
			args: func(t *testing.T, base string) PathKindArgs {
				t.Helper()
				mustMkdirAll(t, filepath.Join(base, "d"))
				return PathKindArgs{Path: "d"}
			},
			wantExists: true,
			wantKind:   PathKindDirectory,
		},
		{
			name: "symlink_follows_to_target_kind_when_allowed",
			args: func(t *testing.T, base string) PathKindArgs {
				t.Helper()
				if runtime.GOOS == toolutil.GOOSWindows {
					t.Skip("symlink tests are unreliable on Windows CI")
				}
				target := filepath.Join(base, "real")
				mustMkdirAll(t, target)
				link := filepath.Join(base, "link")
				mustSymlinkOrSkip(t, target, link)
				return PathKindArgs{Path: "link"}
			},
			wantExists: true,
			wantKind:   PathKindDirectory,
		},
		{
			name:          "symlink_refused_when_blockSymlinks_true",
			blockSymlinks: true,
			args: func(t *testing.T, base string) PathKindArgs {
				t.Helper()
				if runtime.GOOS == toolutil.GOOSWindows {
					t.Skip("symlink tests are unreliable on Windows CI")
				}
				target := filepath.Join(base, "real.txt")
				mustWriteFile(t, target, []byte("x"))
				link := filepath.Join(base, "link.txt")
				mustSymlinkOrSkip(t, target, link)
				return PathKindArgs{Path: "link.txt"}
			},
			wantErr: wantErrContains("symlink"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			ft := mustNewFSTool(t, WithWorkBaseDir(base), WithBlockSymlinks(tt.blockSymlinks))

			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx(t)
			}

			out, err := ft.PathKind(ctx, tt.args(t, base))
			if tt.wantErr == nil {
				tt.wantErr = wantErrNone
			}
			if !tt.wantErr(err) {
				t.Fatalf("err=%v did not match expectation", err)
			}
			if err != nil {
				return
			}

			if out.Exists != tt.wantExists {
				t.Fatalf("Exists=%v want %v", out.Exists, tt.wantExists)
			}
			if out.Kind != tt.wantKind {
				t.Fatalf("Kind=%q want %q", out.Kind, tt.wantKind)
			}
		})
	}
}
