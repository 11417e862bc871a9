package fstool

import (
	"context"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/internal/ioutil"
	"github.com/stg34/llm-file-tools/spec"
)

const listDirectoryFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/listdirectory.ListDirectory"

var listDirectoryTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c4fa",
	Slug:          "listdirectory",
	Version:       "v1.0.0",
	DisplayName:   "List directory",
	Description:   "Return the sorted names of files/directories at the given path (optionally filtered by glob).",
	Tags:          []string{"fs", "list"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"path": {
		"type": "string",
		"description": "Directory path to list.",
		"default": "."
	},
	"pattern": {
		"type": "string",
		"description": "Optional glob pattern (e.g. \"*.txt\") to filter results."
	}
},
"required": [],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: listDirectoryFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

type ListDirectoryArgs struct {
	Path    string `json:"path,omitempty"`    // default "."
	Pattern string `json:"pattern,omitempty"` // Optional glob
}

type ListDirectoryOut struct {
	Path    string   `json:"path"`
	Entries []string `json:"entries"`
}

// listDirectory lists entry names in Path. If Pattern is supplied, the
// results are filtered via glob matching.
func listDirectory(ctx context.Context, args ListDirectoryArgs, p fspolicy.FSPolicy) (*ListDirectoryOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := p.ResolvePath(args.Path, ".")
	if err != nil {
		return nil, err
	}
	if err := p.VerifyDirResolved(dir); err != nil {
		return nil, err
	}

	entries, err := ioutil.ListDirectoryNormalized(dir, args.Pattern)
	if err != nil {
		return nil, err
	}
	return &ListDirectoryOut{Path: dir, Entries: entries}, nil
}
