package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	ReservationOperations *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в собственном реестре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database call latency by operation",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database call errors by operation",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}),

		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),

		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}),

		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		ReservationOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_operations_total",
			Help:        "Reservation lifecycle operations by outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.ReservationOperations,
	)

	return m
}

// Handler отдает метрики реестра в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр (используется в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordReservation увеличивает счетчик операций с бронированиями
// Безопасен для nil-получателя (метрики выключены)
func (m *Metrics) RecordReservation(operation, outcome string) {
	if m == nil {
		return
	}
	m.ReservationOperations.WithLabelValues(operation, outcome).Inc()
}
