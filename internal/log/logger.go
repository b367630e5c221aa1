// Package log is a thin component-aware wrapper around log/slog.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Component names used across the application.
const (
	ComponentApp      = "app"
	ComponentStore    = "store"
	ComponentSettings = "settings"
	ComponentActivity = "activity"
)

// Logger wraps slog.Logger with the name of the component that logs.
type Logger struct {
	*slog.Logger
	root *slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Component string
	Output    io.Writer
}

// DefaultConfig logs warnings and above to stderr.
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelWarn,
		Component: ComponentApp,
		Output:    os.Stderr,
	}
}

// New creates a logger from cfg.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	root := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Level}))
	return &Logger{
		Logger: root.With("component", cfg.Component),
		root:   root,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	cfg := DefaultConfig()
	cfg.Level = slog.LevelError + 1
	cfg.Output = io.Discard
	return New(cfg)
}

// WithComponent returns a logger tagged with a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.root.With("component", component),
		root:   l.root,
	}
}

// ParseLevel maps a settings value to a slog level. Unknown values mean warn.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return level
}
