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

const moveFolderFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/movefolder.MoveFolder"

var moveFolderTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c4f9",
	Slug:          "movefolder",
	Version:       "v1.0.0",
	DisplayName:   "Move folder",
	Description:   "Move (rename) a folder, falling back to recursive copy+remove across filesystems.",
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
	GoImpl: spec.GoToolImpl{FuncID: moveFolderFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

type MoveFolderArgs struct {
	Src           string `json:"src"`
	Dst           string `json:"dst"`
	CreateParents bool   `json:"createParents,omitempty"`
}

type MoveFolderOut struct {
	Src    string         `json:"src"`
	Dst    string         `json:"dst"`
	Method MoveFileMethod `json:"method"`
}

func moveFolder(ctx context.Context, args MoveFolderArgs, p fspolicy.FSPolicy) (*MoveFolderOut, error) {
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
	if _, lerr := os.Lstat(dst); lerr == nil {
		return nil, fmt.Errorf("destination already exists: %s", dst)
	} else if !errors.Is(lerr, os.ErrNotExist) {
		return nil, lerr
	}

	if err := os.Rename(src, dst); err == nil {
		return &MoveFolderOut{Src: src, Dst: dst, Method: MoveFileMethodRename}, nil
	} else if !isCrossDeviceRenameErr(err) {
		return nil, err
	}

	// Cross-device: recursive copy then remove the original tree.
	if _, cerr := ioutil.CopyDirCtx(ctx, src, dst, p.BlockSymlinks()); cerr != nil {
		_ = os.RemoveAll(dst)
		return nil, cerr
	}
	if rmErr := os.RemoveAll(src); rmErr != nil {
		return nil, rmErr
	}
	return &MoveFolderOut{Src: src, Dst: dst, Method: MoveFileMethodCopyAndRemove}, nil
}
