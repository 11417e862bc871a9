package filetools

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/stg34/llm-file-tools/fstool"
	"github.com/stg34/llm-file-tools/internal/jsonutil"
	"github.com/stg34/llm-file-tools/internal/logutil"
	"github.com/stg34/llm-file-tools/internal/toolutil"
	"github.com/stg34/llm-file-tools/spec"
)

// Registry maps funcIDs to callable tools. All I/O crosses the boundary as
// json.RawMessage so hosts can forward model-produced arguments untouched.
type Registry struct {
	mu     sync.RWMutex
	logger *slog.Logger

	funcs map[spec.FuncID]spec.ToolFunc
	specs map[spec.FuncID]spec.Tool

	timeout time.Duration
}

type RegistryOption func(*Registry) error

func WithDefaultCallTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) error {
		r.timeout = d
		return nil
	}
}

func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) error {
		r.logger = logger
		return nil
	}
}

func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		funcs: make(map[spec.FuncID]spec.ToolFunc),
		specs: make(map[spec.FuncID]spec.Tool),
	}
	for _, o := range opts {
		if err := o(r); err != nil {
			return nil, err
		}
	}
	// nil resets logutil to the silent default.
	logutil.SetDefault(r.logger)
	return r, nil
}

// NewBuiltinRegistry returns a Registry preloaded with every file tool and a
// 10 minute default call timeout. Options run after the default, so callers
// can override the timeout with WithDefaultCallTimeout.
func NewBuiltinRegistry(opts ...RegistryOption) (*Registry, error) {
	all := append([]RegistryOption{WithDefaultCallTimeout(10 * time.Minute)}, opts...)
	r, err := NewRegistry(all...)
	if err != nil {
		return nil, err
	}
	if err := RegisterBuiltins(r); err != nil {
		return nil, err
	}
	return r, nil
}

// RegisterBuiltins registers the built-in file tools using a default FSTool:
// no allowed-roots restriction and symlinks permitted.
func RegisterBuiltins(r *Registry) error {
	ft, err := fstool.NewFSTool()
	if err != nil {
		return err
	}
	return RegisterFSTool(r, ft)
}

// RegisterFSTool registers every operation of ft into r. Hosts that want
// sandboxing should construct ft with fstool.WithAllowedRoots and
// fstool.WithBlockSymlinks and pass it here instead of RegisterBuiltins.
func RegisterFSTool(r *Registry, ft *fstool.FSTool) error {
	if ft == nil {
		return errors.New("nil fstool")
	}

	regs := []func() error{
		func() error { return RegisterOutputsTool(r, ft.ReadFileTool(), ft.ReadFile) },
		func() error { return RegisterTypedAsTextTool(r, ft.WriteFileTool(), ft.WriteFile) },
		func() error { return RegisterTypedAsTextTool(r, ft.DeleteFileTool(), ft.DeleteFile) },
		func() error { return RegisterTypedAsTextTool(r, ft.CopyFileTool(), ft.CopyFile) },
		func() error { return RegisterTypedAsTextTool(r, ft.MoveFileTool(), ft.MoveFile) },
		func() error { return RegisterTypedAsTextTool(r, ft.CreateFolderTool(), ft.CreateFolder) },
		func() error { return RegisterTypedAsTextTool(r, ft.DeleteFolderTool(), ft.DeleteFolder) },
		func() error { return RegisterTypedAsTextTool(r, ft.CopyFolderTool(), ft.CopyFolder) },
		func() error { return RegisterTypedAsTextTool(r, ft.MoveFolderTool(), ft.MoveFolder) },
		func() error { return RegisterTypedAsTextTool(r, ft.ListDirectoryTool(), ft.ListDirectory) },
		func() error { return RegisterTypedAsTextTool(r, ft.StatPathTool(), ft.StatPath) },
		func() error { return RegisterTypedAsTextTool(r, ft.PathKindTool(), ft.PathKind) },
		func() error { return RegisterTypedAsTextTool(r, ft.SearchFilesTool(), ft.SearchFiles) },
	}
	for _, reg := range regs {
		if err := reg(); err != nil {
			return err
		}
	}
	return nil
}

// RegisterOutputsTool registers a typed function that already produces
// []ToolOutputUnion. Free function because Go methods cannot take type
// parameters.
func RegisterOutputsTool[T any](
	r *Registry,
	tool spec.Tool,
	fn func(context.Context, T) ([]spec.ToolOutputUnion, error),
) error {
	return r.RegisterTool(tool, typedToOutputs(fn))
}

// RegisterTypedAsTextTool registers a typed function whose result R is
// JSON-encoded and returned as a single text block. Free function because Go
// methods cannot take type parameters.
func RegisterTypedAsTextTool[T, R any](
	r *Registry,
	tool spec.Tool,
	fn func(context.Context, T) (R, error),
) error {
	return r.RegisterTool(tool, typedToText(fn))
}

func (r *Registry) RegisterTool(tool spec.Tool, fn spec.ToolFunc) error {
	if err := validateToolSpec(tool); err != nil {
		return err
	}
	if fn == nil {
		return errors.New("invalid tool: nil func")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := tool.GoImpl.FuncID
	if _, exists := r.funcs[id]; exists {
		return fmt.Errorf("go-tool already registered: %s", id)
	}
	r.funcs[id] = fn
	r.specs[id] = toolutil.CloneTool(tool)
	return nil
}

func validateToolSpec(tool spec.Tool) error {
	switch {
	case tool.GoImpl.FuncID == "":
		return errors.New("invalid tool: missing funcID")
	case tool.SchemaVersion == "":
		return errors.New("invalid tool: missing schemaVersion")
	case tool.SchemaVersion != spec.SchemaVersion:
		return fmt.Errorf(
			"invalid tool: schemaVersion %q does not match library schemaVersion %q",
			tool.SchemaVersion, spec.SchemaVersion,
		)
	case len(tool.ArgSchema) > 0 && !json.Valid(tool.ArgSchema):
		return errors.New("invalid tool: argSchema is not valid JSON")
	}
	return nil
}

type callOptions struct {
	timeout *time.Duration
}

// CallOption configures a single Call.
type CallOption func(*callOptions)

// WithCallTimeout overrides the registry default for one call. Zero disables
// the timeout entirely for that call.
func WithCallTimeout(d time.Duration) CallOption {
	return func(o *callOptions) {
		o.timeout = &d
	}
}

func (r *Registry) Call(
	ctx context.Context,
	funcID spec.FuncID,
	in json.RawMessage,
	callOpts ...CallOption,
) ([]spec.ToolOutputUnion, error) {
	return toolutil.WithRecoveryResp(func() ([]spec.ToolOutputUnion, error) {
		var co callOptions
		for _, o := range callOpts {
			if o != nil {
				o(&co)
			}
		}

		fnCtx := ctx
		if d := r.effectiveTimeout(co); d > 0 {
			var cancel context.CancelFunc
			fnCtx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}

		fn, ok := r.Lookup(funcID)
		if !ok {
			return nil, fmt.Errorf("unknown tool: %s", funcID)
		}
		return fn(fnCtx, in)
	})
}

// effectiveTimeout picks the call override over the registry default. A
// negative value is clamped to zero so it never cancels immediately.
func (r *Registry) effectiveTimeout(co callOptions) time.Duration {
	r.mu.RLock()
	d := r.timeout
	r.mu.RUnlock()

	if co.timeout != nil {
		d = *co.timeout
	}
	return max(d, 0)
}

func (r *Registry) Lookup(funcID spec.FuncID) (spec.ToolFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[funcID]
	return fn, ok
}

func (r *Registry) Tools() []spec.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]spec.Tool, 0, len(r.specs))
	for _, t := range r.specs {
		out = append(out, toolutil.CloneTool(t))
	}
	// Stable manifests matter for prompts and tests.
	slices.SortFunc(out, func(a, b spec.Tool) int {
		if c := cmp.Compare(a.Slug, b.Slug); c != 0 {
			return c
		}
		return cmp.Compare(string(a.GoImpl.FuncID), string(b.GoImpl.FuncID))
	})
	return out
}

// typedToOutputs adapts a typed function into a spec.ToolFunc with strict
// input decoding.
func typedToOutputs[T any](
	fn func(context.Context, T) ([]spec.ToolOutputUnion, error),
) spec.ToolFunc {
	return func(ctx context.Context, in json.RawMessage) ([]spec.ToolOutputUnion, error) {
		args, err := jsonutil.DecodeJSONRaw[T](in)
		if err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
		return fn(ctx, args)
	}
}

// typedToText adapts a typed function into a spec.ToolFunc: strict input
// decoding, then the result JSON-encoded into one text block. A nil result
// ("null") produces no outputs.
func typedToText[T, R any](fn func(context.Context, T) (R, error)) spec.ToolFunc {
	return func(ctx context.Context, in json.RawMessage) ([]spec.ToolOutputUnion, error) {
		args, err := jsonutil.DecodeJSONRaw[T](in)
		if err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}

		out, err := fn(ctx, args)
		if err != nil {
			return nil, err
		}
		raw, err := jsonutil.EncodeToJSONRaw(out)
		if err != nil {
			return nil, fmt.Errorf("encode output: %w", err)
		}

		text := string(raw)
		if text == "" || text == "null" {
			return nil, nil
		}
		return spec.TextOutputs(text), nil
	}
}
