package fstool

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/internal/ioutil"
	"github.com/stg34/llm-file-tools/spec"
)

const copyFolderFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/copyfolder.CopyFolder"

var copyFolderTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c4f7",
	Slug:          "copyfolder",
	Version:       "v1.0.0",
	DisplayName:   "Copy folder",
	Description:   "Recursively copy a folder to a destination path that must not exist yet.",
	Tags:          []string{"fs"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"src": {
		"type": "string",
		"description": "Path of the source folder."
	},
	"dst": {
		"type": "string",
		"description": "Destination folder path (must not exist)."
	},
	"createParents": {
		"type": "boolean",
		"description": "If true, create missing destination parent directories. Max new directories created is 8.",
		"default": false
	}
},
"required": ["src", "dst"],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: copyFolderFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

type CopyFolderArgs struct {
	Src           string `json:"src"`
	Dst           string `json:"dst"`
	CreateParents bool   `json:"createParents,omitempty"`
}

type CopyFolderOut struct {
	Src         string `json:"src"`
	Dst         string `json:"dst"`
	FilesCopied int    `json:"filesCopied"`
}

func copyFolder(ctx context.Context, args CopyFolderArgs, p fspolicy.FSPolicy) (*CopyFolderOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, dst, err := resolveSrcDst(p, args.Src, args.Dst, args.CreateParents)
	if err != nil {
		return nil, err
	}

	if err := p.VerifyDirResolved(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("source folder does not exist: %s", src)
		}
		return nil, err
	}

	n, err := ioutil.CopyDirCtx(ctx, src, dst, p.BlockSymlinks())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("destination folder already exists: %s", dst)
		}
		return nil, err
	}

	return &CopyFolderOut{Src: src, Dst: dst, FilesCopied: n}, nil
}
