package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/go-chi/chi/v5"
)

// withLogging writes one access log entry per request. The matched route
// pattern is logged instead of the raw path so record ids stay out of the
// log.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := lw.status
		if status == 0 {
			status = http.StatusOK
		}

		log.Info().
			Str("route", route).
			Str("method", r.Method).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
