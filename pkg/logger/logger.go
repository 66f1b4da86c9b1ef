// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns the logger the
// request middleware stored in ctx, already tagged with the request ID, so
// every log line from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order settled", "order_id", orderID)
//	// → time=... level=INFO msg="order settled" request_id=a1b2c3d4 order_id=...
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

var L *slog.Logger

func init() {
	L = slog.New(NewHandler(os.Getenv("APP_ENV"), os.Stdout))
	slog.SetDefault(L)
}

// NewHandler picks the output format for env: JSON in production for log
// aggregators, human-readable text everywhere else.
func NewHandler(env string, w io.Writer) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Configure rebuilds the base logger once configuration is loaded. Extra
// handlers (the Mongo sink) receive every record alongside stdout.
func Configure(env string, extra ...slog.Handler) {
	var h slog.Handler = NewHandler(env, os.Stdout)
	if len(extra) > 0 {
		h = NewMultiHandler(append([]slog.Handler{h}, extra...)...)
	}
	L = slog.New(h)
	slog.SetDefault(L)
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the per-request logger stored by InjectLogger, or the
// base logger when ctx carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log into ctx. Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
