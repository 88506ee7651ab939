package textmesh

import (
	"log/slog"

	"github.com/gogpu/textmesh/internal/logging"
)

// SetLogger configures the logger for textmesh and all its sub-packages.
// By default, textmesh produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by textmesh:
//   - [slog.LevelDebug]: cache misses, atlas growth, texture uploads, size switches
//   - [slog.LevelInfo]: library lifecycle
//   - [slog.LevelWarn]: unreadable or invalid fonts, missing fallback typeface
//   - [slog.LevelError]: atlas exhaustion
//
// Example:
//
//	textmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by textmesh.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
