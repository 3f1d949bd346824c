package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger represents application logger.
type Logger struct {
	*slog.Logger
}

// New creates new Logger instance writing to stdout with the specified level.
// Format "json" selects the JSON handler, anything else the text handler.
func New(level int, format string) *Logger {
	return NewWithWriter(os.Stdout, level, format)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level int, format string) *Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// With returns a Logger that includes the given attributes in each record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
