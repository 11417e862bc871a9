// Package logutil holds the process-wide logger for the library. It stays
// silent until the embedding application installs a logger.
package logutil

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var global atomic.Pointer[slog.Logger]

func init() {
	global.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Default returns the current process-wide logger.
func Default() *slog.Logger {
	return global.Load()
}

// SetDefault installs logger as the process-wide logger. A nil logger
// restores the silent default.
func SetDefault(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	global.Store(logger)
}

// With returns a child of the process-wide logger carrying the given
// key/value attributes.
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

func Debug(msg string, args ...any) { Default().Debug(msg, args...) }
func Info(msg string, args ...any)  { Default().Info(msg, args...) }
func Warn(msg string, args ...any)  { Default().Warn(msg, args...) }
func Error(msg string, args ...any) { Default().Error(msg, args...) }
