// Package spec defines the wire-level types shared between the registry and
// tool implementations: tool manifests, argument schemas and output unions.
package spec

import (
	"context"
	"encoding/json"
	"time"
)

// SchemaVersion is the manifest schema this library produces and accepts.
const SchemaVersion = "2026-01-01"

// SchemaStartTime stamps the built-in tool manifests.
var SchemaStartTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type (
	JSONSchema = json.RawMessage
	FuncID     = string
)

// GoToolImpl binds a manifest to its Go implementation by registration key.
type GoToolImpl struct {
	// FuncID is fully qualified, e.g.
	//   "github.com/stg34/llm-file-tools/fstool/searchfiles.SearchFiles"
	FuncID FuncID `json:"funcID" validate:"required"`
}

// Tool is the manifest handed to an LLM host: identity, description and the
// JSON schema of the arguments the tool accepts.
type Tool struct {
	SchemaVersion string `json:"schemaVersion"`
	ID            string `json:"id"` // UUID-v7
	Slug          string `json:"slug"`
	Version       string `json:"version"` // opaque
	DisplayName   string `json:"displayName"`
	Description   string `json:"description"`

	ArgSchema JSONSchema `json:"argSchema"`
	GoImpl    GoToolImpl `json:"goImpl"`

	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`

	Tags []string `json:"tags,omitempty"`
}

// ToolFunc is the function shape stored in the registry: JSON-encoded args
// in, zero or more outputs back.
type ToolFunc func(ctx context.Context, in json.RawMessage) ([]ToolOutputUnion, error)
