package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"foodgram/internal/handler/http/requestid"
)

// NewLogger returns the process logger configured from LOG_LEVEL and LOG_FORMAT.
// LOG_LEVEL accepts debug, info, warn and error (default info).
// LOG_FORMAT=text switches from JSON to human-readable output.
func NewLogger() *slog.Logger {
	return newLogger(os.Stdout, os.Getenv("LOG_FORMAT"), ParseLevel(os.Getenv("LOG_LEVEL")))
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		// debug 時のみ呼び出し元を出力
		AddSource: level <= slog.LevelDebug,
	}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values yield info.
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

// WithRequestID returns logger annotated with the request id carried by ctx, if any.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With(slog.String("request_id", reqID))
}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const loggerContextKey contextKey = "logger"
