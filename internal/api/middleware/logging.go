package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type logContextKey string

const LoggerKey = logContextKey("logger")

const RequestIDHeader = "X-Request-ID"

// statusRecorder remembers the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(r *http.Request, correlationID string) *slog.Logger {
	attrs := []any{
		slog.String("correlation_id", correlationID),
		slog.String("http_method", r.Method),
		slog.String("http_path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	}

	if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
		attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
	}

	return slog.Default().With(attrs...)
}

// Logging tags the request with a correlation id and stores a logger
// carrying it in the context for handlers and services.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		correlationID := r.Header.Get(RequestIDHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, correlationID)

		reqLogger := requestLogger(r, correlationID)
		logger.HTTP(r.Context(), reqLogger, "Incoming request", slog.String("user_agent", r.UserAgent()))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), LoggerKey, reqLogger)))

		logger.HTTP(r.Context(), reqLogger, "Request completed",
			slog.Int("http_status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return l
	}

	return slog.Default()
}
