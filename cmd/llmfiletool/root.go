package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stg34/llm-file-tools/fstool"
	"github.com/stg34/llm-file-tools/internal/config"
	"github.com/stg34/llm-file-tools/internal/logutil"
)

var (
	flagConfig        string
	flagBase          string
	flagRoots         []string
	flagBlockSymlinks bool
	flagLogLevel      string
	flagNoColor       bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the llmfiletool CLI.
var rootCmd = &cobra.Command{
	Use:           "llmfiletool",
	Short:         "Sandboxed file and folder operations with keyword search",
	Long:          "llmfiletool exposes file-and-folder management tools (create, delete, copy, move, read, write, list, stat, search) scoped beneath a configured base directory, emitting JSON results.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config file (default: .llmfiletool.yml, then XDG config)")
	rootCmd.PersistentFlags().StringVar(&flagBase, "base", "", "base directory for resolving relative paths")
	rootCmd.PersistentFlags().StringArrayVar(&flagRoots, "root", nil, "allowed root directory (repeatable); operations outside all roots are refused")
	rootCmd.PersistentFlags().BoolVar(&flagBlockSymlinks, "block-symlinks", false, "refuse symlink traversal in every operation")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (default: silent)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
}

// loadFileConfig resolves the effective file config: --config > local > global.
// Missing config files are not an error; flags alone are enough to run.
func loadFileConfig() (config.FileConfig, error) {
	if flagConfig != "" {
		return config.LoadFile(flagConfig)
	}
	cwd, err := os.Getwd()
	if err == nil {
		if cfg, err := config.LoadLocal(cwd); err == nil {
			return cfg, nil
		}
	}
	if cfg, err := config.LoadGlobal(); err == nil {
		return cfg, nil
	}
	return config.FileConfig{}, nil
}

// newFSTool builds an FSTool from config file values overridden by CLI flags.
func newFSTool() (*fstool.FSTool, error) {
	cfg, err := loadFileConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	base := cfg.GetWorkBaseDir()
	if flagBase != "" {
		base = flagBase
	}
	roots := cfg.AllowedRoots
	if len(flagRoots) > 0 {
		roots = flagRoots
	}
	block := cfg.GetBlockSymlinks() || flagBlockSymlinks

	installLogger(pickLogLevel(cfg))

	return fstool.NewFSTool(
		fstool.WithWorkBaseDir(base),
		fstool.WithAllowedRoots(roots),
		fstool.WithBlockSymlinks(block),
	)
}

func pickLogLevel(cfg config.FileConfig) string {
	if flagLogLevel != "" {
		return flagLogLevel
	}
	return cfg.GetLogLevel()
}

func installLogger(level string) {
	if level == "" {
		logutil.SetDefault(nil)
		return
	}
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	logutil.SetDefault(slog.New(h))
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
