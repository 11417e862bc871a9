package fstool

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/internal/ioutil"
	"github.com/stg34/llm-file-tools/internal/pdfutil"
	"github.com/stg34/llm-file-tools/internal/toolutil"
	"github.com/stg34/llm-file-tools/spec"
)

const readFileFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/readfile.ReadFile"

var readFileTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c4f4",
	Slug:          "readfile",
	Version:       "v1.0.0",
	DisplayName:   "Read file",
	Description:   "Read a local file and return its contents, either as UTF-8 text or as base64 bytes.",
	Tags:          []string{"fs", "read"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"path": {
		"type": "string",
		"description": "File to read, absolute or relative to the work base directory."
	},
	"encoding": {
		"type": "string",
		"enum": ["text", "binary"],
		"description": "\"text\" returns UTF-8 content, \"binary\" returns a base64 string.",
		"default": "text"
	}
},
"required": ["path"],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: readFileFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

type ReadFileArgs struct {
	Path     string `json:"path"`               // required
	Encoding string `json:"encoding,omitempty"` // "text" (default) | "binary"
}

// readFile reads a file from disk and returns its contents.
// If Encoding == "binary" the output is base64-encoded.
func readFile(ctx context.Context, args ReadFileArgs, p fspolicy.FSPolicy) ([]spec.ToolOutputUnion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enc, err := ioutil.ParseReadEncoding(args.Encoding)
	if err != nil {
		return nil, err
	}

	abs, err := p.ResolvePath(args.Path, "")
	if err != nil {
		return nil, err
	}

	st, err := p.RequireExistingRegularFileResolved(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path does not exist: %s", abs)
		}
		return nil, err
	}
	if st.Size() > toolutil.MaxFileReadBytes {
		return nil, fmt.Errorf(
			"file %q is too large to read (%d bytes; max %d)",
			abs, st.Size(), toolutil.MaxFileReadBytes,
		)
	}

	if enc == ioutil.ReadEncodingText {
		return readFileAsText(ctx, abs)
	}
	return readFileAsBinary(abs)
}

func readFileAsText(ctx context.Context, abs string) ([]spec.ToolOutputUnion, error) {
	mimeType, extMode, mimeErr := ioutil.MIMEForLocalFile(abs)
	ext := strings.ToLower(filepath.Ext(abs))

	// PDFs get text extraction even when sniffing fails, as long as the
	// extension says .pdf.
	if ext == ioutil.ExtPDF || (mimeErr == nil && mimeType == ioutil.MIMEApplicationPDF) {
		text, err := pdfutil.ExtractPDFTextSafe(ctx, abs, toolutil.MaxFileReadBytes)
		if err != nil {
			return nil, err
		}
		return spec.TextOutputs(text), nil
	}

	if mimeErr != nil {
		return nil, fmt.Errorf("cannot read %q as text (MIME detection failed: %w)", abs, mimeErr)
	}
	if extMode != ioutil.ExtensionModeText {
		return nil, fmt.Errorf(
			"cannot read non-text file %q as text; use encoding \"binary\" instead", abs,
		)
	}

	data, err := ioutil.ReadFile(abs, ioutil.ReadEncodingText, toolutil.MaxFileReadBytes)
	if err != nil {
		return nil, err
	}
	if !utf8.ValidString(data) {
		return nil, fmt.Errorf(
			"file %q is not valid UTF-8 text; use encoding \"binary\" instead", abs,
		)
	}
	return spec.TextOutputs(data), nil
}

// readFileAsBinary base64-encodes the file and wraps it in an image or file
// output depending on the detected MIME type.
func readFileAsBinary(abs string) ([]spec.ToolOutputUnion, error) {
	data, err := ioutil.ReadFile(abs, ioutil.ReadEncodingBinary, toolutil.MaxFileReadBytes)
	if err != nil {
		return nil, err
	}

	baseName := filepath.Base(abs)
	if baseName == "" {
		baseName = "file"
	}

	mt := binaryMIME(abs)
	if strings.HasPrefix(mt, "image/") {
		return []spec.ToolOutputUnion{{
			Kind: spec.ToolOutputKindImage,
			ImageItem: &spec.ToolOutputImage{
				Detail:    spec.ImageDetailAuto,
				ImageName: baseName,
				ImageMIME: mt,
				ImageData: data, // base64-encoded
			},
		}}, nil
	}
	return []spec.ToolOutputUnion{{
		Kind: spec.ToolOutputKindFile,
		FileItem: &spec.ToolOutputFile{
			FileName: baseName,
			FileMIME: mt,
			FileData: data, // base64-encoded
		},
	}}, nil
}

func binaryMIME(abs string) string {
	if mimeType, _, err := ioutil.MIMEForLocalFile(abs); err == nil && mimeType != "" {
		return string(mimeType)
	}
	if mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(abs))); mt != "" {
		return mt
	}
	return string(ioutil.MIMEApplicationOctetStream)
}
