package fstool

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, base string) (*FSTool, ReadFileArgs)
		ctx     func(t *testing.T) context.Context
		wantIs  error
		wantSub string
	}{
		{
			name: "canceled_context",
			setup: func(t *testing.T, base string) (*FSTool, ReadFileArgs) {
				t.Helper()
				return mustNewFSTool(t, WithWorkBaseDir(base)), ReadFileArgs{Path: "any.txt"}
			},
			ctx:    canceledContext,
			wantIs: context.Canceled,
		},
		{
			name: "empty_path",
			setup: func(t *testing.T, base string) (*FSTool, ReadFileArgs) {
				t.Helper()
				return mustNewFSTool(t, WithWorkBaseDir(base)), ReadFileArgs{}
			},
			wantSub: "invalid path",
		},
		{
			name: "missing_file",
			setup: func(t *testing.T, base string) (*FSTool, ReadFileArgs) {
				t.Helper()
				return mustNewFSTool(t, WithWorkBaseDir(base)), ReadFileArgs{Path: "gone.txt"}
			},
			wantSub: "does not exist",
		},
		{
			name: "unknown_encoding",
			setup: func(t *testing.T, base string) (*FSTool, ReadFileArgs) {
				t.Helper()
				mustWriteFile(t, filepath.Join(base, "n.txt"), []byte("x"))
				return mustNewFSTool(t, WithWorkBaseDir(base)), ReadFileArgs{Path: "n.txt", Encoding: "hex"}
			},
			wantSub: `encoding must be "text" or "binary"`,
		},
		{
			name: "binary_bytes_as_text",
			setup: func(t *testing.T, base string) (*FSTool, ReadFileArgs) {
				t.Helper()
				mustWriteFile(t, filepath.Join(base, "raw.dat"), []byte{0x00, 0x7F, 0x00})
				return mustNewFSTool(t, WithWorkBaseDir(base)), ReadFileArgs{Path: "raw.dat", Encoding: "text"}
			},
			wantSub: "cannot read non-text file",
		},
		{
			name: "broken_utf8_as_text",
			setup: func(t *testing.T, base string) (*FSTool, ReadFileArgs) {
				t.Helper()
				mustWriteFile(t, filepath.Join(base, "bad.txt"), []byte{0xC3, 0x28, 0xA0, 0xA1})
				return mustNewFSTool(t, WithWorkBaseDir(base)), ReadFileArgs{Path: "bad.txt", Encoding: "text"}
			},
			wantSub: "not valid UTF-8",
		},
		{
			name: "symlink_refused_when_blocked",
			setup: func(t *testing.T, base string) (*FSTool, ReadFileArgs) {
				t.Helper()
				target := filepath.Join(base, "real.txt")
				mustWriteFile(t, target, []byte("ok"))
				mustSymlinkOrSkip(t, target, filepath.Join(base, "alias.txt"))
				ft := mustNewFSTool(t, WithWorkBaseDir(base), WithBlockSymlinks(true))
				return ft, ReadFileArgs{Path: "alias.txt", Encoding: "text"}
			},
			wantSub: "symlink",
		},
		{
			name: "path_outside_allowed_roots",
			setup: func(t *testing.T, base string) (*FSTool, ReadFileArgs) {
				t.Helper()
				elsewhere := filepath.Join(t.TempDir(), "leak.txt")
				mustWriteFile(t, elsewhere, []byte("x"))
				ft := mustNewFSTool(t, WithWorkBaseDir(base), WithAllowedRoots([]string{base}))
				return ft, ReadFileArgs{Path: elsewhere}
			},
			wantSub: "outside allowed roots",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft, args := tt.setup(t, t.TempDir())

			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx(t)
			}

			_, err := ft.ReadFile(ctx, args)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Fatalf("err=%v want errors.Is(%v)", err, tt.wantIs)
			}
			if tt.wantSub != "" && !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("err=%v want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestReadFile_TextMode(t *testing.T) {
	base := t.TempDir()
	mustWriteFile(t, filepath.Join(base, "notes.md"), []byte("# heading\nbody\n"))
	ft := mustNewFSTool(t, WithWorkBaseDir(base))

	for _, enc := range []string{"", "text", "  TeXt "} {
		outs, err := ft.ReadFile(context.Background(), ReadFileArgs{Path: "notes.md", Encoding: enc})
		if err != nil {
			t.Fatalf("ReadFile(encoding=%q): %v", enc, err)
		}
		if len(outs) != 1 || outs[0].TextItem == nil || outs[0].FileItem != nil || outs[0].ImageItem != nil {
			t.Fatalf("encoding=%q: want a single text output, got %#v", enc, outs)
		}
		if outs[0].TextItem.Text != "# heading\nbody\n" {
			t.Fatalf("encoding=%q: text=%q", enc, outs[0].TextItem.Text)
		}
	}
}

func TestReadFile_BinaryReturnsFileUnion(t *testing.T) {
	base := t.TempDir()
	payload := []byte{0x50, 0x4B, 0x03, 0x04, 0x00}
	mustWriteFile(t, filepath.Join(base, "bundle.bin"), payload)
	ft := mustNewFSTool(t, WithWorkBaseDir(base))

	outs, err := ft.ReadFile(context.Background(), ReadFileArgs{Path: "bundle.bin", Encoding: "binary"})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(outs) != 1 || outs[0].FileItem == nil || outs[0].TextItem != nil || outs[0].ImageItem != nil {
		t.Fatalf("want a single file output, got %#v", outs)
	}
	fi := outs[0].FileItem
	if fi.FileName != "bundle.bin" {
		t.Fatalf("FileName=%q", fi.FileName)
	}
	if !strings.HasPrefix(fi.FileMIME, "application/") {
		t.Fatalf("FileMIME=%q want application/ prefix", fi.FileMIME)
	}
	if got := decodeBase64OrFail(t, fi.FileData); !bytes.Equal(got, payload) {
		t.Fatalf("decoded=%v want %v", got, payload)
	}
}

func TestReadFile_BinaryImageReturnsImageUnion(t *testing.T) {
	base := t.TempDir()
	payload := []byte{0x89, 0x50, 0x4E, 0x47}
	mustWriteFile(t, filepath.Join(base, "shot.png"), payload)
	ft := mustNewFSTool(t, WithWorkBaseDir(base))

	outs, err := ft.ReadFile(context.Background(), ReadFileArgs{Path: "shot.png", Encoding: "binary"})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(outs) != 1 || outs[0].ImageItem == nil || outs[0].TextItem != nil || outs[0].FileItem != nil {
		t.Fatalf("want a single image output, got %#v", outs)
	}
	im := outs[0].ImageItem
	if im.ImageName != "shot.png" || !strings.HasPrefix(im.ImageMIME, "image/") {
		t.Fatalf("ImageName=%q ImageMIME=%q", im.ImageName, im.ImageMIME)
	}
	if got := decodeBase64OrFail(t, im.ImageData); !bytes.Equal(got, payload) {
		t.Fatalf("decoded=%v want %v", got, payload)
	}
}
