package fstool

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/spec"
)

const deleteFolderFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/deletefolder.DeleteFolder"

var deleteFolderTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c4f2",
	Slug:          "deletefolder",
	Version:       "v1.0.0",
	DisplayName:   "Delete folder",
	Description:   "Recursively delete a folder and its contents. A missing folder is reported, not an error.",
	Tags:          []string{"fs"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"path": {
		"type": "string",
		"description": "Path of the folder to delete."
	}
},
"required": ["path"],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: deleteFolderFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

type DeleteFolderArgs struct {
	Path string `json:"path"`
}

type DeleteFolderOut struct {
	Path    string `json:"path"`
	Existed bool   `json:"existed"`
}

func deleteFolder(ctx context.Context, args DeleteFolderArgs, p fspolicy.FSPolicy) (*DeleteFolderOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := p.ResolvePath(args.Path, "")
	if err != nil {
		return nil, err
	}

	st, lerr := os.Lstat(dir)
	if lerr != nil {
		if errors.Is(lerr, os.ErrNotExist) {
			return &DeleteFolderOut{Path: dir, Existed: false}, nil
		}
		return nil, lerr
	}
	if (st.Mode() & os.ModeSymlink) != 0 {
		if p.BlockSymlinks() {
			return nil, fmt.Errorf("%w: refusing to delete symlink folder: %s", fspolicy.ErrSymlinkDisallowed, dir)
		}
		return nil, fmt.Errorf("refusing to delete symlink folder: %s", dir)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	if err := os.RemoveAll(dir); err != nil {
		return nil, err
	}
	return &DeleteFolderOut{Path: dir, Existed: true}, nil
}
