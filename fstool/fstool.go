package fstool

import (
	"context"
	"sync"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
	"github.com/stg34/llm-file-tools/internal/toolutil"
	"github.com/stg34/llm-file-tools/spec"
)

// FSTool is an instance-owned filesystem tool runner.
// It centralizes path resolution and sandbox policy:
//   - workBaseDir: base for resolving relative paths
//   - allowedRoots: optional restriction; if empty, allow all
//   - blockSymlinks: refuse symlink traversal in every operation
type FSTool struct {
	mu     sync.RWMutex
	policy fspolicy.FSPolicy

	workBaseDir   string
	allowedRoots  []string
	blockSymlinks bool
}

type FSToolOption func(*FSTool) error

// WithAllowedRoots restricts all filesystem paths to be within one of the provided roots.
// Roots are canonicalized (clean+abs+best-effort symlink eval) and must exist as directories.
func WithAllowedRoots(roots []string) FSToolOption {
	return func(ft *FSTool) error {
		ft.allowedRoots = roots
		return nil
	}
}

// WithWorkBaseDir sets the base directory used to resolve relative input paths.
// If empty/whitespace, the first allowed root (or the process working directory) is used.
func WithWorkBaseDir(base string) FSToolOption {
	return func(ft *FSTool) error {
		ft.workBaseDir = base
		return nil
	}
}

// WithBlockSymlinks refuses symlink components and symlink files in every operation.
func WithBlockSymlinks(block bool) FSToolOption {
	return func(ft *FSTool) error {
		ft.blockSymlinks = block
		return nil
	}
}

func NewFSTool(opts ...FSToolOption) (*FSTool, error) {
	ft := &FSTool{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(ft); err != nil {
			return nil, err
		}
	}

	p, err := fspolicy.New(ft.workBaseDir, ft.allowedRoots, ft.blockSymlinks)
	if err != nil {
		return nil, err
	}
	ft.policy = p
	ft.workBaseDir = p.WorkBaseDir()
	ft.allowedRoots = p.AllowedRoots()

	return ft, nil
}

func (ft *FSTool) WorkBaseDir() string {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.workBaseDir
}

func (ft *FSTool) AllowedRoots() []string {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return append([]string(nil), ft.allowedRoots...)
}

// SetWorkBaseDir updates the work base directory at runtime (best-effort).
// The new base must satisfy the existing allowed-roots/symlink policy.
func (ft *FSTool) SetWorkBaseDir(base string) error {
	ft.mu.RLock()
	roots := append([]string(nil), ft.allowedRoots...)
	block := ft.blockSymlinks
	ft.mu.RUnlock()

	p, err := fspolicy.New(base, roots, block)
	if err != nil {
		return err
	}

	ft.mu.Lock()
	ft.policy = p
	ft.workBaseDir = p.WorkBaseDir()
	ft.mu.Unlock()
	return nil
}

// Tools returns all fstool tool specs for registration.
func (ft *FSTool) Tools() []spec.Tool {
	return []spec.Tool{
		ft.CreateFolderTool(),
		ft.DeleteFolderTool(),
		ft.WriteFileTool(),
		ft.ReadFileTool(),
		ft.DeleteFileTool(),
		ft.CopyFileTool(),
		ft.CopyFolderTool(),
		ft.MoveFileTool(),
		ft.MoveFolderTool(),
		ft.ListDirectoryTool(),
		ft.StatPathTool(),
		ft.PathKindTool(),
		ft.SearchFilesTool(),
	}
}

func (ft *FSTool) CreateFolderTool() spec.Tool {
	return toolutil.CloneTool(createFolderTool)
}

func (ft *FSTool) CreateFolder(ctx context.Context, args CreateFolderArgs) (*CreateFolderOut, error) {
	return toolutil.WithRecoveryResp(func() (*CreateFolderOut, error) {
		return createFolder(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) DeleteFolderTool() spec.Tool {
	return toolutil.CloneTool(deleteFolderTool)
}

func (ft *FSTool) DeleteFolder(ctx context.Context, args DeleteFolderArgs) (*DeleteFolderOut, error) {
	return toolutil.WithRecoveryResp(func() (*DeleteFolderOut, error) {
		return deleteFolder(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) WriteFileTool() spec.Tool {
	return toolutil.CloneTool(writeFileTool)
}

func (ft *FSTool) WriteFile(ctx context.Context, args WriteFileArgs) (*WriteFileOut, error) {
	return toolutil.WithRecoveryResp(func() (*WriteFileOut, error) {
		return writeFile(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) ReadFileTool() spec.Tool {
	return toolutil.CloneTool(readFileTool)
}

func (ft *FSTool) ReadFile(ctx context.Context, args ReadFileArgs) ([]spec.ToolOutputUnion, error) {
	return toolutil.WithRecoveryResp(func() ([]spec.ToolOutputUnion, error) {
		return readFile(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) DeleteFileTool() spec.Tool {
	return toolutil.CloneTool(deleteFileTool)
}

func (ft *FSTool) DeleteFile(ctx context.Context, args DeleteFileArgs) (*DeleteFileOut, error) {
	return toolutil.WithRecoveryResp(func() (*DeleteFileOut, error) {
		return deleteFile(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) CopyFileTool() spec.Tool {
	return toolutil.CloneTool(copyFileTool)
}

func (ft *FSTool) CopyFile(ctx context.Context, args CopyFileArgs) (*CopyFileOut, error) {
	return toolutil.WithRecoveryResp(func() (*CopyFileOut, error) {
		return copyFile(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) CopyFolderTool() spec.Tool {
	return toolutil.CloneTool(copyFolderTool)
}

func (ft *FSTool) CopyFolder(ctx context.Context, args CopyFolderArgs) (*CopyFolderOut, error) {
	return toolutil.WithRecoveryResp(func() (*CopyFolderOut, error) {
		return copyFolder(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) MoveFileTool() spec.Tool {
	return toolutil.CloneTool(moveFileTool)
}

func (ft *FSTool) MoveFile(ctx context.Context, args MoveFileArgs) (*MoveFileOut, error) {
	return toolutil.WithRecoveryResp(func() (*MoveFileOut, error) {
		return moveFile(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) MoveFolderTool() spec.Tool {
	return toolutil.CloneTool(moveFolderTool)
}

func (ft *FSTool) MoveFolder(ctx context.Context, args MoveFolderArgs) (*MoveFolderOut, error) {
	return toolutil.WithRecoveryResp(func() (*MoveFolderOut, error) {
		return moveFolder(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) ListDirectoryTool() spec.Tool {
	return toolutil.CloneTool(listDirectoryTool)
}

func (ft *FSTool) ListDirectory(ctx context.Context, args ListDirectoryArgs) (*ListDirectoryOut, error) {
	return toolutil.WithRecoveryResp(func() (*ListDirectoryOut, error) {
		return listDirectory(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) StatPathTool() spec.Tool {
	return toolutil.CloneTool(statPathTool)
}

func (ft *FSTool) StatPath(ctx context.Context, args StatPathArgs) (*StatPathOut, error) {
	return toolutil.WithRecoveryResp(func() (*StatPathOut, error) {
		return statPath(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) PathKindTool() spec.Tool {
	return toolutil.CloneTool(pathKindTool)
}

func (ft *FSTool) PathKind(ctx context.Context, args PathKindArgs) (*PathKindOut, error) {
	return toolutil.WithRecoveryResp(func() (*PathKindOut, error) {
		return pathKind(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) SearchFilesTool() spec.Tool {
	return toolutil.CloneTool(searchFilesTool)
}

func (ft *FSTool) SearchFiles(ctx context.Context, args SearchFilesArgs) (*SearchFilesOut, error) {
	return toolutil.WithRecoveryResp(func() (*SearchFilesOut, error) {
		return searchFiles(ctx, args, ft.snapshotPolicy())
	})
}

func (ft *FSTool) snapshotPolicy() fspolicy.FSPolicy {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.policy
}
