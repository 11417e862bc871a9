package ioutil

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/stg34/llm-file-tools/internal/fspolicy"
)

type PathInfo struct {
	Path    string     `json:"path"`
	Name    string     `json:"name"`
	Exists  bool       `json:"exists"`
	IsDir   bool       `json:"isDir"`
	Size    int64      `json:"size,omitempty"`
	ModTime *time.Time `json:"modTime,omitempty"`
}

// StatPath returns metadata for a path. A missing path is not an error: the
// result has Exists == false and carries the resolved absolute path.
//
// Under a symlink-blocking policy the path is Lstat'ed and symlinks are
// rejected instead of followed.
func StatPath(p fspolicy.FSPolicy, path string) (*PathInfo, error) {
	abs, err := p.ResolvePath(path, "")
	if err != nil {
		return nil, err
	}

	stat := os.Stat
	if p.BlockSymlinks() {
		stat = os.Lstat
	}

	info, err := stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return &PathInfo{Path: abs}, nil
	}
	if err != nil {
		return nil, err
	}
	if p.BlockSymlinks() && info.Mode()&os.ModeSymlink != 0 {
		return nil, fspolicy.ErrSymlinkDisallowed
	}
	return pathInfoOf(abs, info), nil
}

func pathInfoOf(path string, info fs.FileInfo) *PathInfo {
	mod := info.ModTime().UTC()
	return &PathInfo{
		Path:    path,
		Name:    info.Name(),
		Exists:  true,
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: &mod,
	}
}
