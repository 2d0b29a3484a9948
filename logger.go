package gralloc

import (
	"log/slog"

	"github.com/gogpu/gralloc/internal/logging"
)

// SetLogger configures the logger for gralloc and all its sub-packages.
// By default, gralloc produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by gralloc:
//   - [slog.LevelDebug]: selection traces (roles, capability sets, candidates)
//   - [slog.LevelInfo]: capability snapshot built
//   - [slog.LevelWarn]: stripped modifiers, misaligned video buffers
//   - [slog.LevelError]: internal layout errors
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	gralloc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by gralloc.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
