package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for the llmfiletool CLI.
// Pointer fields distinguish "unset" from zero values so CLI flags can layer
// on top of file values.
type FileConfig struct {
	// WorkBaseDir is the base directory used to resolve relative paths.
	WorkBaseDir *string `yaml:"work_base_dir"`

	// AllowedRoots restricts every operation to paths under these directories.
	// Empty or absent means no restriction.
	AllowedRoots []string `yaml:"allowed_roots"`

	// BlockSymlinks refuses symlink components and symlink targets everywhere.
	BlockSymlinks *bool `yaml:"block_symlinks"`

	// LogLevel is one of debug, info, warn, error. Default: no logging.
	LogLevel *string `yaml:"log_level"`

	// MaxResults caps search output. 0 or absent means unlimited.
	MaxResults *int `yaml:"max_results"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a directory-local config file in the given root.
// It supports .llmfiletool.yml/.yaml and llmfiletool.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".llmfiletool.yml", ".llmfiletool.yaml", "llmfiletool.yml", "llmfiletool.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "llmfiletool", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// GetWorkBaseDir returns the configured base directory or empty string.
func (fc FileConfig) GetWorkBaseDir() string {
	if fc.WorkBaseDir == nil {
		return ""
	}
	return *fc.WorkBaseDir
}

// GetBlockSymlinks returns whether symlink blocking is enabled (default false).
func (fc FileConfig) GetBlockSymlinks() bool {
	if fc.BlockSymlinks == nil {
		return false
	}
	return *fc.BlockSymlinks
}

// GetLogLevel returns the configured log level or empty string.
func (fc FileConfig) GetLogLevel() string {
	if fc.LogLevel == nil {
		return ""
	}
	return *fc.LogLevel
}

// GetMaxResults returns the configured search result cap (default 0, unlimited).
func (fc FileConfig) GetMaxResults() int {
	if fc.MaxResults == nil {
		return 0
	}
	return *fc.MaxResults
}
