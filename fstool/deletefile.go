package fstool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/spec"
)

const deleteFileFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/deletefile.DeleteFile"

var deleteFileTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c4f5",
	Slug:          "deletefile",
	Version:       "v1.0.0",
	DisplayName:   "Delete file",
	Description:   "Delete a single file. Deleting a path that does not exist succeeds and reports existed=false.",
	Tags:          []string{"fs"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"path": {
		"type": "string",
		"description": "File to delete, absolute or relative to the work base directory."
	}
},
"required": ["path"],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: deleteFileFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

type DeleteFileArgs struct {
	Path string `json:"path"`
}

type DeleteFileOut struct {
	Path    string `json:"path"`
	Existed bool   `json:"existed"`
}

func deleteFile(ctx context.Context, args DeleteFileArgs, p fspolicy.FSPolicy) (*DeleteFileOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := p.ResolvePath(args.Path, "")
	if err != nil {
		return nil, err
	}

	if p.BlockSymlinks() {
		if parent := filepath.Dir(src); parent != "" && parent != "." {
			if err := p.VerifyDirResolved(parent); err != nil {
				return nil, err
			}
		}
	}

	st, err := os.Lstat(src)
	if errors.Is(err, os.ErrNotExist) {
		return &DeleteFileOut{Path: src, Existed: false}, nil
	}
	if err != nil {
		return nil, err
	}

	isLink := st.Mode()&os.ModeSymlink != 0
	switch {
	case st.IsDir():
		return nil, fmt.Errorf("path is a directory, not a file: %s", src)
	case isLink && p.BlockSymlinks():
		return nil, fmt.Errorf("%w: refusing to delete symlink file: %s", fspolicy.ErrSymlinkDisallowed, src)
	case !st.Mode().IsRegular() && !isLink:
		// Sockets, devices, fifos and friends stay untouched.
		return nil, fmt.Errorf("refusing to delete non-regular file: %s", src)
	}

	if err := os.Remove(src); err != nil {
		return nil, err
	}
	return &DeleteFileOut{Path: src, Existed: true}, nil
}
