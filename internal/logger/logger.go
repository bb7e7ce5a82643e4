package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Levels beyond the four built into slog.
const (
	LevelHTTP  = slog.Level(-2)
	LevelFatal = slog.Level(12)
)

var levelNames = map[slog.Level]string{
	LevelHTTP:  "HTTP",
	LevelFatal: "FATAL",
}

// ParseLevel maps a config value to a level, defaulting to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "http":
		return LevelHTTP
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "fatal":
		return LevelFatal
	default:
		return slog.LevelInfo
	}
}

// New returns a JSON logger that writes the custom levels by name.
func New(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) > 0 {
				return a
			}

			lvl, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}

			if name, ok := levelNames[lvl]; ok {
				a.Value = slog.StringValue(name)
			}

			return a
		},
	})

	return slog.New(handler)
}

func HTTP(ctx context.Context, l *slog.Logger, msg string, args ...any) {
	l.Log(ctx, LevelHTTP, msg, args...)
}

// Fatal logs at FATAL. It does not exit.
func Fatal(ctx context.Context, l *slog.Logger, msg string, args ...any) {
	l.Log(ctx, LevelFatal, msg, args...)
}
