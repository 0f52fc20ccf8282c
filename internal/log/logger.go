// Package log wraps log/slog with a component name and request-scoped loggers.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger and tags every record with a component.
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	Component string
	Output    io.Writer
}

// New creates a text logger writing to cfg.Output (stdout when nil).
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	component := cfg.Component
	if component == "" {
		component = ComponentApp
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Level})
	return &Logger{Logger: slog.New(handler), component: component}
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a new logger with the given attributes
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), component: l.component}
}

// WithComponent returns a logger reporting under another component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger, component: component}
}

// Component returns the logger's component name
func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) tag(args []any) []any {
	return append([]any{FieldComponent, l.component}, args...)
}

func (l *Logger) Info(msg string, args ...any)  { l.Logger.Info(msg, l.tag(args)...) }
func (l *Logger) Warn(msg string, args ...any)  { l.Logger.Warn(msg, l.tag(args)...) }
func (l *Logger) Error(msg string, args ...any) { l.Logger.Error(msg, l.tag(args)...) }
func (l *Logger) Debug(msg string, args ...any) { l.Logger.Debug(msg, l.tag(args)...) }

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.Logger.InfoContext(ctx, msg, l.tag(args)...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.Logger.WarnContext(ctx, msg, l.tag(args)...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.Logger.ErrorContext(ctx, msg, l.tag(args)...)
}

// SetDefault sets the default logger for the application
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return New(Config{Output: io.Discard, Level: slog.LevelError + 1})
}
