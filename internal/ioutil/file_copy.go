package ioutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

const copyChunkSize = 128 * 1024

// CopyFileCtx copies src to dst, checking ctx between chunks. Without
// overwrite, dst is opened O_EXCL so an existing destination surfaces as
// os.ErrExist.
//
// Raw IO helper: the caller is responsible for policy resolution.
func CopyFileCtx(ctx context.Context, src, dst string, perm os.FileMode, overwrite bool) (written int64, err error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := openCopyDst(dst, perm, overwrite)
	if err != nil {
		return 0, err
	}

	// A freshly created dst should not be left behind half-written.
	createdDst := !overwrite
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil && createdDst {
			_ = os.Remove(dst)
		}
	}()

	if written, err = copyChunksCtx(ctx, out, in); err != nil {
		return written, err
	}
	return written, out.Sync()
}

func openCopyDst(dst string, perm os.FileMode, overwrite bool) (*os.File, error) {
	if !overwrite {
		return os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	}

	// Truncating is only safe for regular files.
	st, err := os.Lstat(dst)
	switch {
	case err == nil && st.IsDir():
		return nil, fmt.Errorf("destination is a directory, not a file: %s", dst)
	case err == nil && !st.Mode().IsRegular():
		return nil, fmt.Errorf("refusing to overwrite non-regular file: %s", dst)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return nil, err
	}
	return os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
}

func copyChunksCtx(ctx context.Context, dst io.Writer, src io.Reader) (written int64, err error) {
	buf := make([]byte, copyChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		nr, rerr := src.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			if werr != nil {
				return written, werr
			}
			if nw != nr {
				return written, errors.New("short write during copy")
			}
			written += int64(nw)
		}
		if errors.Is(rerr, io.EOF) {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
