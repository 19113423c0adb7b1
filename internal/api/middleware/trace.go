package middleware

import (
	"log/slog"
	"net/http"

	"github.com/internsim/practice-api/internal/api/shared"
	"github.com/internsim/practice-api/internal/platform/logger"
)

// NewTraceMiddleware adds a trace ID to the request context together with
// a request logger derived from base. It should run before any handler
// that logs or writes error responses.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
