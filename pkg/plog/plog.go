// Package plog is the process-wide structured logger. It wraps log/slog with a
// small set of levels and splits output by severity: records below WARN go to
// stdout, WARN and above go to stderr so a failing run prints its error where
// shell users expect it.
package plog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Levels understood by the logger. Notice sits between Info and Warn and is used
// for outcomes worth seeing even when the user only asked for warnings upward.
const (
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.LevelInfo
	LevelNotice = slog.Level(2)
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
)

// levelDispatchHandler writes records below WARN to one handler and WARN and
// above to another.
type levelDispatchHandler struct {
	stdoutHandler slog.Handler
	stderrHandler slog.Handler
}

func (h *levelDispatchHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.stdoutHandler.Enabled(ctx, level) || h.stderrHandler.Enabled(ctx, level)
}

func (h *levelDispatchHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		return h.stderrHandler.Handle(ctx, r)
	}
	return h.stdoutHandler.Handle(ctx, r)
}

func (h *levelDispatchHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelDispatchHandler{
		stdoutHandler: h.stdoutHandler.WithAttrs(attrs),
		stderrHandler: h.stderrHandler.WithAttrs(attrs),
	}
}

func (h *levelDispatchHandler) WithGroup(name string) slog.Handler {
	return &levelDispatchHandler{
		stdoutHandler: h.stdoutHandler.WithGroup(name),
		stderrHandler: h.stderrHandler.WithGroup(name),
	}
}

var (
	defaultLogger atomic.Pointer[slog.Logger]
	level         slog.LevelVar
	quietMode     atomic.Bool
)

// replaceLevel renders the custom Notice level by name instead of "INFO+2".
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelNotice {
		a.Value = slog.StringValue("NOTICE")
	}
	return a
}

func init() {
	level.Set(LevelInfo)

	stdoutHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       &level,
		ReplaceAttr: replaceLevel,
	})
	// The stderr handler never drops warnings or errors, regardless of the
	// configured level.
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       LevelWarn,
		ReplaceAttr: replaceLevel,
	})

	defaultLogger.Store(slog.New(&levelDispatchHandler{
		stdoutHandler: stdoutHandler,
		stderrHandler: stderrHandler,
	}))
}

// SetOutput redirects every level to w, primarily for testing.
func SetOutput(w io.Writer) {
	quietMode.Store(false)
	defaultLogger.Store(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       &level,
		ReplaceAttr: replaceLevel,
	})))
}

// SetLevel sets the minimum level written to stdout.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// LevelFromString maps a config or flag value to a level. Unknown values fall
// back to info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "notice":
		return LevelNotice
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetQuiet suppresses Debug, Info and Notice output. Warnings and errors are
// still written.
func SetQuiet(quiet bool) {
	quietMode.Store(quiet)
}

// IsQuiet reports whether quiet mode is enabled.
func IsQuiet() bool {
	return quietMode.Load()
}

func log(l slog.Level, msg string, args ...any) {
	if l < LevelWarn && quietMode.Load() {
		return
	}
	defaultLogger.Load().Log(context.Background(), l, msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { log(LevelDebug, msg, args...) }

// Info logs an informational message.
func Info(msg string, args ...any) { log(LevelInfo, msg, args...) }

// Notice logs a message that is more important than Info but not a problem.
func Notice(msg string, args ...any) { log(LevelNotice, msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { log(LevelWarn, msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { log(LevelError, msg, args...) }
