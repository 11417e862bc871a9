package fstool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/internal/ioutil"
	"github.com/stg34/llm-file-tools/spec"
)

const moveFileFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/movefile.MoveFile"

var moveFileTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c4f8",
	Slug:          "movefile",
	Version:       "v1.0.0",
	DisplayName:   "Move file",
	Description:   "Move (rename) a regular file, falling back to copy+remove across filesystems.",
	Tags:          []string{"fs"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"src": {
		"type": "string",
		"description": "Path of the source file."
	},
	"dst": {
		"type": "string",
		"description": "Destination file path."
	},
	"overwrite": {
		"type": "boolean",
		"description": "If false and the destination exists, return an error.",
		"default": false
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
	GoImpl: spec.GoToolImpl{FuncID: moveFileFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

type MoveFileArgs struct {
	Src           string `json:"src"`
	Dst           string `json:"dst"`
	Overwrite     bool   `json:"overwrite,omitempty"`
	CreateParents bool   `json:"createParents,omitempty"`
}

type MoveFileMethod string

const (
	MoveFileMethodRename        MoveFileMethod = "rename"
	MoveFileMethodCopyAndRemove MoveFileMethod = "copyAndRemove"
)

type MoveFileOut struct {
	Src    string         `json:"src"`
	Dst    string         `json:"dst"`
	Method MoveFileMethod `json:"method"`
}

func moveFile(ctx context.Context, args MoveFileArgs, p fspolicy.FSPolicy) (*MoveFileOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, dst, err := resolveSrcDst(p, args.Src, args.Dst, args.CreateParents)
	if err != nil {
		return nil, err
	}

	srcInfo, err := p.RequireExistingRegularFileResolved(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("source file does not exist: %s", src)
		}
		return nil, err
	}

	if !args.Overwrite {
		if _, lerr := os.Lstat(dst); lerr == nil {
			return nil, fmt.Errorf("destination already exists and overwrite=false: %s", dst)
		} else if !errors.Is(lerr, os.ErrNotExist) {
			return nil, lerr
		}
	}

	if err := os.Rename(src, dst); err == nil {
		return &MoveFileOut{Src: src, Dst: dst, Method: MoveFileMethodRename}, nil
	} else if !isCrossDeviceRenameErr(err) {
		return nil, err
	}

	// Cross-device: copy then remove the original.
	if _, cerr := ioutil.CopyFileCtx(ctx, src, dst, srcInfo.Mode().Perm(), args.Overwrite); cerr != nil {
		return nil, cerr
	}
	if rmErr := os.Remove(src); rmErr != nil {
		_ = os.Remove(dst)
		return nil, rmErr
	}
	return &MoveFileOut{Src: src, Dst: dst, Method: MoveFileMethodCopyAndRemove}, nil
}

// isCrossDeviceRenameErr - In go 1.25: syscall.EXDEV exists on Windows too, and os.LinkError unwraps to the errno.
func isCrossDeviceRenameErr(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
