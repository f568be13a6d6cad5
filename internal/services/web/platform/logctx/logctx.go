// Package logctx carries a request-scoped structured logger through
// context.Context so renderers receive it explicitly.
package logctx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LogType categorizes log records.
type LogType string

const (
	TypeAPI     LogType = "api"
	TypeSystem  LogType = "system"
	TypeDefault LogType = "default"
)

// Attribute keys shared by every scoped record.
const (
	KeyLogType   = "log_type"
	KeyRequestID = "request_id"
	KeyLocale    = "locale"
	KeyScope     = "scope"
)

type loggerKey struct{}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the scoped logger, or slog.Default when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// With derives a child scope carrying args and returns both.
func With(ctx context.Context, args ...any) (context.Context, *slog.Logger) {
	logger := FromContext(ctx).With(args...)
	return WithLogger(ctx, logger), logger
}

// WithType tags the scoped logger with a log_type attribute.
func WithType(ctx context.Context, logType LogType) context.Context {
	if logType == "" {
		logType = TypeDefault
	}
	ctx, _ = With(ctx, KeyLogType, string(logType))
	return ctx
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(value string) (slog.Level, error) {
	var level slog.Level
	value = strings.TrimSpace(value)
	if value == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", value, err)
	}
	return level, nil
}

// NewHandler builds a tint console handler, or a JSON handler when format
// is "json".
func NewHandler(w io.Writer, format string, level slog.Leveler) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Middleware opens a logging scope for each request and records its outcome.
//
// The scope carries request_id, method, path and log_type=api. It expects the
// request id header to be populated earlier in the chain.
func Middleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base
			if logger == nil {
				logger = FromContext(r.Context())
			}
			logger = logger.With(
				KeyRequestID, strings.TrimSpace(r.Header.Get("X-Request-ID")),
				"method", r.Method,
				"path", r.URL.Path,
				KeyLogType, string(TypeAPI),
			)
			ctx := WithLogger(r.Context(), logger)

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "request completed",
				"status", status,
				"bytes", rec.bytes,
				"duration", time.Since(start),
			)
		})
	}
}
