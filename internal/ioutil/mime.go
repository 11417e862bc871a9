package ioutil

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
)

var (
	// ErrInvalidPath is shared with policy to keep behavior consistent.
	ErrInvalidPath        = fspolicy.ErrInvalidPath
	ErrInvalidDir         = errors.New("invalid dir")
	ErrFileExceedsMaxSize = errors.New("file exceeds maximum allowed size")
)

type ExtensionMode string

const (
	ExtensionModeText     ExtensionMode = "text"
	ExtensionModeImage    ExtensionMode = "image"
	ExtensionModeDocument ExtensionMode = "document"
	ExtensionModeDefault  ExtensionMode = "default"
)

type MIMEType string

const (
	MIMEEmpty                  MIMEType = ""
	MIMEApplicationOctetStream MIMEType = "application/octet-stream"
	MIMEApplicationPDF         MIMEType = "application/pdf"
	MIMETextPlain              MIMEType = "text/plain; charset=utf-8"
)

const ExtPDF = ".pdf"

// Extensions we treat as text without sniffing file bytes.
var textExtensions = map[string]struct{}{
	".txt": {}, ".md": {}, ".markdown": {}, ".log": {},
	".json": {}, ".jsonl": {}, ".yaml": {}, ".yml": {}, ".toml": {},
	".xml": {}, ".html": {}, ".htm": {}, ".css": {}, ".scss": {},
	".js": {}, ".ts": {}, ".tsx": {}, ".jsx": {},
	".go": {}, ".py": {}, ".rs": {}, ".java": {}, ".c": {}, ".cpp": {},
	".h": {}, ".hpp": {}, ".cs": {}, ".rb": {}, ".php": {}, ".sh": {},
	".sql": {}, ".mod": {}, ".sum": {}, ".csv": {}, ".ini": {}, ".cfg": {},
}

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {}, ".bmp": {}, ".svg": {},
}

// MIMEForLocalFile returns a best-effort MIME type and mode for a local file.
// Extension mapping is tried first (no IO); sniffing file bytes is the fallback.
func MIMEForLocalFile(path string) (MIMEType, ExtensionMode, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ExtPDF:
		return MIMEApplicationPDF, ExtensionModeDocument, nil
	case isTextExtension(ext):
		return MIMETextPlain, ExtensionModeText, nil
	}
	if _, ok := imageExtensions[ext]; ok {
		return MIMEType("image/" + strings.TrimPrefix(ext, ".")), ExtensionModeImage, nil
	}
	return SniffFileMIME(path)
}

// SniffFileMIME reads a small sample and classifies it.
func SniffFileMIME(path string) (MIMEType, ExtensionMode, error) {
	f, err := os.Open(path)
	if err != nil {
		return MIMEEmpty, ExtensionModeDefault, err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return MIMEEmpty, ExtensionModeDefault, err
	}

	sample := buf[:n]
	if len(sample) == 0 {
		return MIMETextPlain, ExtensionModeText, nil
	}

	mt := MIMEType(http.DetectContentType(sample))
	m := GetModeForMIME(mt)
	if m != ExtensionModeDefault {
		return mt, m, nil
	}

	if isProbablyTextSample(sample) {
		return MIMETextPlain, ExtensionModeText, nil
	}

	if GetBaseMIME(mt) == string(MIMEApplicationOctetStream) || mt == MIMEEmpty {
		return MIMEApplicationOctetStream, ExtensionModeDefault, nil
	}
	return mt, ExtensionModeDefault, nil
}

func GetModeForMIME(mt MIMEType) ExtensionMode {
	base := GetBaseMIME(mt)
	switch {
	case base == string(MIMEApplicationPDF):
		return ExtensionModeDocument
	case strings.HasPrefix(base, "text/"):
		return ExtensionModeText
	case strings.HasPrefix(base, "image/"):
		return ExtensionModeImage
	}
	if strings.HasSuffix(base, "+json") || strings.HasSuffix(base, "+xml") {
		return ExtensionModeText
	}
	return ExtensionModeDefault
}

func GetBaseMIME(mt MIMEType) string {
	s := strings.TrimSpace(strings.ToLower(string(mt)))
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func isTextExtension(ext string) bool {
	_, ok := textExtensions[ext]
	return ok
}

// isProbablyTextSample applies a NUL/control-byte heuristic to a leading sample.
func isProbablyTextSample(p []byte) bool {
	if len(p) == 0 {
		return true
	}
	nulCount := 0
	controlCount := 0
	for _, b := range p {
		if b == 0 {
			nulCount++
			continue
		}
		if b < 32 && b != 9 && b != 10 && b != 13 {
			controlCount++
		}
	}
	if nulCount > 0 {
		return false
	}
	return controlCount*10 <= len(p)
}
