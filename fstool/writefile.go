package fstool

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/internal/ioutil"
	"github.com/stg34/llm-file-tools/spec"
)

const writeFileFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/writefile.WriteFile"

var writeFileTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c4f3",
	Slug:          "writefile",
	Version:       "v1.0.0",
	DisplayName:   "Write file",
	Description:   "Write a file to disk. encoding=text writes UTF-8 content; encoding=binary decodes a base64 string and writes the raw bytes.",
	Tags:          []string{"fs"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"path": {
		"type": "string",
		"description": "Destination file, absolute or relative to the work base directory."
	},
	"encoding": {
		"type": "string",
		"enum": ["text", "binary"],
		"description": "How to interpret content.",
		"default": "text"
	},
	"content": {
		"type": "string",
		"description": "UTF-8 text when encoding=text, base64-encoded bytes when encoding=binary."
	},
	"overwrite": {
		"type": "boolean",
		"description": "Replace an existing file. When false an existing destination is an error.",
		"default": false
	},
	"createParents": {
		"type": "boolean",
		"description": "Create missing parent directories (at most 8 new levels).",
		"default": false
	}
},
"required": ["path", "content"],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: writeFileFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

type WriteFileArgs struct {
	Path          string `json:"path"`
	Encoding      string `json:"encoding,omitempty"` // "text"(default) | "binary"
	Content       string `json:"content"`
	Overwrite     bool   `json:"overwrite,omitempty"`
	CreateParents bool   `json:"createParents,omitempty"`
}

type WriteFileOut struct {
	Path         string `json:"path"`
	BytesWritten int64  `json:"bytesWritten"`
}

// maxWriteBytes caps the raw byte count hitting disk, whether that is UTF-8
// text or decoded base64. Mirrors the read-side cap.
const maxWriteBytes int64 = 16 * 1024 * 1024 // 16MB

func writeFile(ctx context.Context, args WriteFileArgs, p fspolicy.FSPolicy) (*WriteFileOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enc, err := ioutil.ParseReadEncoding(args.Encoding)
	if err != nil {
		return nil, err
	}

	data, err := decodeWritePayload(enc, args.Content)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxWriteBytes {
		return nil, fmt.Errorf("content too large (%d bytes; max %d)", len(data), maxWriteBytes)
	}

	dst, err := ioutil.WriteFileAtomicBytes(p, args.Path, data, 0o600, args.Overwrite, args.CreateParents, 8)
	if err != nil {
		return nil, err
	}
	return &WriteFileOut{
		Path:         dst,
		BytesWritten: int64(len(data)),
	}, nil
}

// decodeWritePayload validates and decodes the request content. An empty
// string is a legitimate payload in both encodings.
func decodeWritePayload(enc ioutil.ReadEncoding, content string) ([]byte, error) {
	if enc == ioutil.ReadEncodingText {
		if !utf8.ValidString(content) {
			return nil, fmt.Errorf("content is not valid UTF-8")
		}
		return []byte(content), nil
	}

	b64 := strings.TrimSpace(content)
	// Size the decode up front so a huge payload fails before allocation.
	if int64(base64.StdEncoding.DecodedLen(len(b64))) > maxWriteBytes {
		return nil, fmt.Errorf("content too large (decoded > %d bytes)", maxWriteBytes)
	}
	decoded, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 content: %w", err)
	}
	return decoded, nil
}
