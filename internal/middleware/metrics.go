package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/trsv-dev/users-service/internal/metrics"
)

// MetricsMiddleware Считает запросы и их длительность по шаблону маршрута chi.
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			next.ServeHTTP(ww, r)
			duration := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			// шаблон вместо пути, чтобы ID не раздували количество меток
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			m.HTTPLatency.WithLabelValues(route, r.Method).Observe(duration.Seconds())
			m.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		})
	}
}
