package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/trsv-dev/users-service/internal/metrics"
)

// TestMetricsMiddleware Проверяет подсчёт запросов по шаблону маршрута.
func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	for _, path := range []string{"/users/1", "/users/2", "/health", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/users/{id}", http.MethodGet, "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/health", http.MethodGet, "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("unmatched", http.MethodGet, "404")))
}
