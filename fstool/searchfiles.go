package fstool

import (
	"context"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/internal/ioutil"
	"github.com/stg34/llm-file-tools/internal/logutil"
	"github.com/stg34/llm-file-tools/spec"
)

const searchFilesFuncID spec.FuncID = "github.com/stg34/llm-file-tools/fstool/searchfiles.SearchFiles"

var searchFilesTool = spec.Tool{
	SchemaVersion: spec.SchemaVersion,
	ID:            "019a3e60-4c1d-7a90-b1e2-6f40ad81c502",
	Slug:          "searchfiles",
	Version:       "v1.0.0",
	DisplayName:   "Search files (name or content)",
	Description:   "Recursively search a directory for files whose name or textual content contains a keyword (case-sensitive substring, no wildcards).",
	Tags:          []string{"fs", "search"},

	ArgSchema: spec.JSONSchema(`{
"$schema": "http://json-schema.org/draft-07/schema#",
"type": "object",
"properties": {
	"root": {
		"type": "string",
		"description": "Directory to start searching from.",
		"default": "."
	},
	"keyword": {
		"type": "string",
		"description": "Case-sensitive substring matched against each file's base name, then its UTF-8 text content."
	},
	"maxResults": {
		"type": "integer",
		"description": "Stop after this many matches (0 = unlimited).",
		"default": 0
	}
},
"required": ["keyword"],
"additionalProperties": false
}`),
	GoImpl: spec.GoToolImpl{FuncID: searchFilesFuncID},

	CreatedAt:  spec.SchemaStartTime,
	ModifiedAt: spec.SchemaStartTime,
}

type SearchFilesArgs struct {
	Root       string `json:"root,omitempty"` // default "."
	Keyword    string `json:"keyword"`        // required, non-empty
	MaxResults int    `json:"maxResults,omitempty"`
}

type SearchFilesOut struct {
	MatchCount        int      `json:"matchCount"`
	ReachedMaxResults bool     `json:"reachedMaxResults"`
	SkippedUnreadable int      `json:"skippedUnreadable"`
	Matches           []string `json:"matches"`
}

// searchFiles walks Root (recursively, unbounded depth) and returns the
// absolute paths of files matching Keyword by base name or text content.
// A missing root yields an empty result rather than an error.
func searchFiles(
	ctx context.Context,
	args SearchFilesArgs,
	p fspolicy.FSPolicy,
) (*SearchFilesOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := ioutil.SearchFiles(ctx, p, args.Root, args.Keyword, args.MaxResults)
	if err != nil {
		return nil, err
	}

	logutil.Debug("search completed",
		"keyword", args.Keyword,
		"matches", len(res.Matches),
		"skipped", res.SkippedUnreadable,
	)

	return &SearchFilesOut{
		Matches:           res.Matches,
		MatchCount:        len(res.Matches),
		ReachedMaxResults: res.ReachedLimit,
		SkippedUnreadable: res.SkippedUnreadable,
	}, nil
}
