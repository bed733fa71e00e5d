// Package middleware holds HTTP middleware for the API surface.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/deckforge/deckforge/internal/api/shared"
)

// Trace adds a trace ID to the request context. Apply early in the
// chain so all subsequent handlers and error responses can correlate.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		slog.Debug("request started",
			"trace_id", shared.GetTraceID(ctx),
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
