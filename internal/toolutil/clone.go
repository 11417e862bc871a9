package toolutil

import (
	"slices"

	"github.com/stg34/llm-file-tools/spec"
)

// CloneTool deep-copies a tool spec so callers cannot mutate registry state
// through the returned value.
func CloneTool(t spec.Tool) spec.Tool {
	out := t
	out.ArgSchema = slices.Clone(t.ArgSchema)
	out.Tags = slices.Clone(t.Tags)
	return out
}
