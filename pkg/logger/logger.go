// Package logger provides centralized slog.Logger construction with
// configurable level and output format (text or JSON).
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type settings struct {
	w     io.Writer
	attrs []slog.Attr
}

// Option customizes logger construction.
type Option func(*settings)

// WithWriter redirects output away from stderr.
func WithWriter(w io.Writer) Option {
	return func(s *settings) {
		s.w = w
	}
}

// WithService stamps every record with the service name and version.
func WithService(name, version string) Option {
	return func(s *settings) {
		s.attrs = append(s.attrs,
			slog.String("service", name),
			slog.String("version", version),
		)
	}
}

// New creates a *slog.Logger configured with the given level and format.
// Level: "debug", "info", "warn", "error" (default: "info").
// Format: "json" or "text" (default: "text").
// At debug level records carry their source location.
func New(level, format string, opts ...Option) *slog.Logger {
	s := settings{w: os.Stderr}
	for _, opt := range opts {
		opt(&s)
	}

	lvl := ParseLevel(level)
	handlerOpts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		handler = slog.NewJSONHandler(s.w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(s.w, handlerOpts)
	}

	if len(s.attrs) > 0 {
		handler = handler.WithAttrs(s.attrs)
	}

	return slog.New(handler)
}

// ParseLevel converts a level string to slog.Level, ignoring case.
// Unrecognized values return LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
