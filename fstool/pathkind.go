package fstool

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/spec"
)

const pathKindFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/pathkind.PathKind"

var pathKindTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c4fc",
	Slug:          "pathkind",
	Version:       "v1.0.0",
	DisplayName:   "Classify path",
	Description:   "Report whether a path exists and whether it is a regular file, a directory, or something else.",
	Tags:          []string{"fs", "stat"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"path": {
		"type": "string",
		"description": "Absolute or relative path to classify."
	}
},
"required": ["path"],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: pathKindFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

const (
	PathKindFile      = "file"
	PathKindDirectory = "directory"
	PathKindOther     = "other"
)

type PathKindArgs struct {
	Path string `json:"path"`
}

type PathKindOut struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	// Kind is one of "file", "directory", "other". Empty when the path does not exist.
	Kind string `json:"kind,omitempty"`
}

// pathKind classifies a path as file/directory/other.
// Missing paths report exists=false with a nil error.
func pathKind(ctx context.Context, args PathKindArgs, p fspolicy.FSPolicy) (*PathKindOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := p.ResolvePath(args.Path, "")
	if err != nil {
		return nil, err
	}

	out := &PathKindOut{Path: abs}

	var info fs.FileInfo
	if p.BlockSymlinks() {
		info, err = os.Lstat(abs)
	} else {
		info, err = os.Stat(abs)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return nil, err
	}

	if p.BlockSymlinks() && (info.Mode()&os.ModeSymlink) != 0 {
		return nil, fspolicy.ErrSymlinkDisallowed
	}

	out.Exists = true
	switch {
	case info.Mode().IsRegular():
		out.Kind = PathKindFile
	case info.IsDir():
		out.Kind = PathKindDirectory
	default:
		out.Kind = PathKindOther
	}
	return out, nil
}
