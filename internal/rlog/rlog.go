// Package rlog is a small leveled logger over log/slog, in the call
// shape the teacher's cmd/ubtconv/main.go uses its own log package
// (log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(...)))):
// a package-level default Logger, constructed from a Handler, that the
// CLI entry point installs once at startup. The teacher's actual log
// package source was not part of the retrieved pack, so this is a
// from-scratch implementation of the documented idiom, not an adaptation
// of teacher source.
package rlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// Level mirrors slog.Level under the teacher's naming (LevelInfo rather
// than slog.LevelInfo) so call sites read the way the teacher's did.
type Level = slog.Level

const (
	LevelTrace Level = slog.Level(-8)
	LevelDebug Level = slog.LevelDebug
	LevelInfo  Level = slog.LevelInfo
	LevelWarn  Level = slog.LevelWarn
	LevelError Level = slog.LevelError
)

// Logger wraps an *slog.Logger with the short Trace/Debug/Info/Warn/Error
// verbs used throughout this module.
type Logger struct {
	inner *slog.Logger
}

// NewLogger builds a Logger from a slog.Handler.
func NewLogger(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

func (l *Logger) log(level Level, msg string, ctx ...any) {
	l.inner.Log(context.Background(), level, msg, ctx...)
}

func (l *Logger) Trace(msg string, ctx ...any) { l.log(LevelTrace, msg, ctx...) }
func (l *Logger) Debug(msg string, ctx ...any) { l.log(LevelDebug, msg, ctx...) }
func (l *Logger) Info(msg string, ctx ...any)  { l.log(LevelInfo, msg, ctx...) }
func (l *Logger) Warn(msg string, ctx ...any)  { l.log(LevelWarn, msg, ctx...) }
func (l *Logger) Error(msg string, ctx ...any) { l.log(LevelError, msg, ctx...) }

var defaultLogger = NewLogger(NewTerminalHandlerWithLevel(os.Stderr, LevelInfo, false))

// SetDefault installs l as the package-level default Logger that Root()
// returns.
func SetDefault(l *Logger) { defaultLogger = l }

// Root returns the package-level default Logger.
func Root() *Logger { return defaultLogger }

// NewTerminalHandlerWithLevel builds a slog.Handler that writes
// human-readable, optionally ANSI-colored lines to w, filtering anything
// below minLevel. useColor is typically term.IsTerminal(w's fd).
func NewTerminalHandlerWithLevel(w io.Writer, minLevel Level, useColor bool) slog.Handler {
	return &terminalHandler{w: w, minLevel: minLevel, useColor: useColor}
}

type terminalHandler struct {
	w        io.Writer
	minLevel Level
	useColor bool
	attrs    []slog.Attr
}

func (h *terminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel
}

func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	levelStr := levelLabel(r.Level, h.useColor)
	line := fmt.Sprintf("%s [%s] %s", ts.Format("15:04:05.000"), levelStr, r.Message)

	for _, a := range h.attrs {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})

	_, err := fmt.Fprintln(h.w, line)
	return err
}

func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *terminalHandler) WithGroup(_ string) slog.Handler { return h }

func levelLabel(level slog.Level, color bool) string {
	var label string
	switch {
	case level < LevelDebug:
		label = "TRCE"
	case level < LevelInfo:
		label = "DBUG"
	case level < LevelWarn:
		label = "INFO"
	case level < LevelError:
		label = "WARN"
	default:
		label = "CRIT"
	}
	if !color {
		return label
	}
	code := "37"
	switch label {
	case "WARN":
		code = "33"
	case "CRIT":
		code = "31"
	case "INFO":
		code = "32"
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", code, label)
}
