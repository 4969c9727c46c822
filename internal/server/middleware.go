package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/metrics"
)

// requestLogger logs each request and records it in the HTTP metrics,
// labelled by route pattern so path parameters don't explode cardinality.
func requestLogger(logger *slog.Logger, reg *metrics.Registry) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			duration := time.Since(start)
			reg.RecordHTTPRequest(r.Method, route, strconv.Itoa(status), duration)

			logger.Log(r.Context(), logging.LevelTrace, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", duration,
				"request_id", chiRequestID(r),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

func chiRequestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
