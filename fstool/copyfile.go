package fstool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/internal/ioutil"
	"github.com/stg34/llm-file-tools/spec"
)

const copyFileFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/copyfile.CopyFile"

var copyFileTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c4f6",
	Slug:          "copyfile",
	Version:       "v1.0.0",
	DisplayName:   "Copy file",
	Description:   "Copy a regular file to a new destination path.",
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
	GoImpl: spec.GoToolImpl{FuncID: copyFileFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

type CopyFileArgs struct {
	Src           string `json:"src"`
	Dst           string `json:"dst"`
	Overwrite     bool   `json:"overwrite,omitempty"`
	CreateParents bool   `json:"createParents,omitempty"`
}

type CopyFileOut struct {
	Src          string `json:"src"`
	Dst          string `json:"dst"`
	BytesWritten int64  `json:"bytesWritten"`
}

func copyFile(ctx context.Context, args CopyFileArgs, p fspolicy.FSPolicy) (*CopyFileOut, error) {
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

	n, err := ioutil.CopyFileCtx(ctx, src, dst, srcInfo.Mode().Perm(), args.Overwrite)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("destination already exists and overwrite=false: %s", dst)
		}
		return nil, err
	}

	return &CopyFileOut{Src: src, Dst: dst, BytesWritten: n}, nil
}

// resolveSrcDst resolves both endpoints of a copy/move through the policy and
// prepares the destination parent directory.
func resolveSrcDst(p fspolicy.FSPolicy, srcIn, dstIn string, createParents bool) (src, dst string, err error) {
	src, err = p.ResolvePath(srcIn, "")
	if err != nil {
		return "", "", err
	}
	dst, err = p.ResolvePath(dstIn, "")
	if err != nil {
		return "", "", err
	}

	parent := filepath.Dir(dst)
	if createParents {
		if _, err := p.EnsureDirResolved(parent, 8 /*max new dirs*/); err != nil {
			return "", "", err
		}
	} else {
		if err := p.VerifyDirResolved(parent); err != nil {
			return "", "", err
		}
	}
	return src, dst, nil
}
