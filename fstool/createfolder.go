package fstool

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/spec"
)

const createFolderFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/createfolder.CreateFolder"

var createFolderTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c4f1",
	Slug:          "createfolder",
	Version:       "v1.0.0",
	DisplayName:   "Create folder",
	Description:   "Create a folder (and missing parents). An already-existing folder is reported, not an error.",
	Tags:          []string{"fs"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"path": {
		"type": "string",
		"description": "Path of the folder to create."
	}
},
"required": ["path"],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: createFolderFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

type CreateFolderArgs struct {
	Path string `json:"path"`
}

type CreateFolderOut struct {
	Path           string `json:"path"`
	AlreadyExisted bool   `json:"alreadyExisted"`
}

func createFolder(ctx context.Context, args CreateFolderArgs, p fspolicy.FSPolicy) (*CreateFolderOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := p.ResolvePath(args.Path, "")
	if err != nil {
		return nil, err
	}

	if st, lerr := os.Lstat(dir); lerr == nil {
		if !st.IsDir() {
			return nil, fmt.Errorf("path exists and is not a directory: %s", dir)
		}
		return &CreateFolderOut{Path: dir, AlreadyExisted: true}, nil
	} else if !errors.Is(lerr, os.ErrNotExist) {
		return nil, lerr
	}

	if _, err := p.EnsureDirResolved(dir, 0 /*unlimited*/); err != nil {
		return nil, err
	}
	return &CreateFolderOut{Path: dir, AlreadyExisted: false}, nil
}
