// Package logging provides the structured logger used by the converter.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

// Logger wraps slog.Logger with conversion-specific helpers.
// Field names are kept consistent across the converter.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that writes JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable records to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// New builds a Logger from a format ("text" or "json") and a level name
// ("debug", "info", "warn", "error").
func New(w io.Writer, format, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextLogger(w, lvl), nil
	case "json":
		return NewJSONLogger(w, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// ParseLevel parses a level name. The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// WithInput adds the input file to the logger.
func (l *Logger) WithInput(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("input", path),
	}
}

// LogRequest logs the start of a conversion.
func (l *Logger) LogRequest(ctx context.Context, extent, encoding, header string, swap bool) {
	l.InfoContext(ctx, "converting",
		"extent", extent,
		"encoding", encoding,
		"header", header,
		"swap", swap,
	)
}

// LogHeaderGuess logs the header size inferred from the stream length.
func (l *Logger) LogHeaderGuess(ctx context.Context, total, payload, header int64) {
	l.DebugContext(ctx, "guessed header",
		"stream", humanize.IBytes(uint64(max(total, 0))),
		"payload", humanize.IBytes(uint64(max(payload, 0))),
		"header_bytes", header,
	)
}

// LogSlice logs a slice file about to be read.
func (l *Logger) LogSlice(ctx context.Context, index int, path string) {
	l.DebugContext(ctx, "reading slice",
		"index", index,
		"path", path,
	)
}

// LogPersist logs a written output array.
func (l *Logger) LogPersist(ctx context.Context, path string, size int64) {
	l.InfoContext(ctx, "array saved",
		"output", path,
		"size", humanize.IBytes(uint64(max(size, 0))),
	)
}

// LogFailure logs a conversion that stopped in the given state.
func (l *Logger) LogFailure(ctx context.Context, state string, err error) {
	l.ErrorContext(ctx, "conversion failed",
		"state", state,
		"error", err,
	)
}
