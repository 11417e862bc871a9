// Package pdfutil extracts plain text from PDFs for the read tool.
package pdfutil

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/stg34/llm-file-tools/internal/toolutil"
)

// ExtractPDFTextSafe pulls the plain text out of a local PDF, capped at
// maxBytes. The pdf library can panic on malformed input, so the whole
// extraction runs under panic recovery.
func ExtractPDFTextSafe(ctx context.Context, path string, maxBytes int64) (string, error) {
	return toolutil.WithRecoveryResp(func() (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		f, r, err := pdf.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()

		reader, err := r.GetPlainText()
		if err != nil {
			return "", err
		}

		var sb strings.Builder
		if _, err := io.Copy(&sb, &io.LimitedReader{R: reader, N: maxBytes}); err != nil {
			return "", err
		}

		text := strings.TrimSpace(sb.String())
		if text == "" {
			return "", errors.New("empty PDF text after extraction")
		}
		return text, nil
	})
}
