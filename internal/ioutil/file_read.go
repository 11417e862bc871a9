package ioutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

type ReadEncoding string

const (
	ReadEncodingText   ReadEncoding = "text"
	ReadEncodingBinary ReadEncoding = "binary"
)

// ParseReadEncoding normalizes a caller-supplied encoding string. Empty
// input defaults to text.
func ParseReadEncoding(s string) (ReadEncoding, error) {
	switch enc := ReadEncoding(strings.ToLower(strings.TrimSpace(s))); enc {
	case "":
		return ReadEncodingText, nil
	case ReadEncodingText, ReadEncodingBinary:
		return enc, nil
	default:
		return "", errors.New(`encoding must be "text" or "binary"`)
	}
}

// ReadFile reads a file and returns its contents, base64-encoded when
// encoding is binary. maxBytes > 0 caps the read; larger files fail with
// ErrFileExceedsMaxSize rather than being truncated.
//
// Raw IO helper: the caller is responsible for policy resolution.
func ReadFile(path string, encoding ReadEncoding, maxBytes int64) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || strings.ContainsRune(path, 0) {
		return "", ErrInvalidPath
	}
	if encoding != ReadEncodingText && encoding != ReadEncodingBinary {
		return "", errors.New(`encoding must be "text" or "binary"`)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(cappedReader(f, maxBytes))
	if err != nil {
		return "", err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", fmt.Errorf(
			"file %q exceeds maximum allowed size (%d bytes): %w",
			path, maxBytes, ErrFileExceedsMaxSize,
		)
	}

	if encoding == ReadEncodingBinary {
		return base64.StdEncoding.EncodeToString(data), nil
	}
	return string(data), nil
}

// cappedReader limits r to maxBytes+1 so the caller can detect (not merely
// truncate) an oversized file. maxBytes <= 0 means unlimited.
func cappedReader(r io.Reader, maxBytes int64) io.Reader {
	if maxBytes <= 0 {
		return r
	}
	limit := int64(math.MaxInt64)
	if maxBytes < math.MaxInt64 {
		limit = maxBytes + 1
	}
	return io.LimitReader(r, limit)
}
