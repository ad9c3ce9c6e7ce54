package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics Набор метрик сервиса:
//   - http_requests_total: количество запросов по маршруту, методу и статусу
//   - http_request_duration_seconds: длительность обработки запросов
//   - users_created_total: количество созданных пользователей
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
	UsersCreated prometheus.Counter

	gatherer prometheus.Gatherer
}

// New Создаёт метрики и регистрирует их в отдельном реестре.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Количество HTTP-запросов (по маршруту/методу/статусу)"},
			[]string{"route", "method", "status"},
		),
		HTTPLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "Длительность обработки HTTP-запросов (секунды)", Buckets: prometheus.DefBuckets},
			[]string{"route", "method"},
		),
		UsersCreated: prometheus.NewCounter(prometheus.CounterOpts{Name: "users_created_total", Help: "Количество созданных пользователей"}),
		gatherer:     reg,
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPLatency,
		m.UsersCreated,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler HTTP-обработчик для выдачи метрик в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
