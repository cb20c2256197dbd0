package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса с собственным реестром
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BookingTransitions *prometheus.CounterVec
	PendingBookings    prometheus.Gauge
	ConfirmedBookings  prometheus.Gauge
	ArmedTimers        prometheus.Gauge

	NotificationsTotal *prometheus.CounterVec
	PersistenceErrors  *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Booking state transitions by event and outcome",
			ConstLabels: constLabels,
		}, []string{"event", "outcome"}),
		PendingBookings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "bookings_pending",
			Help:        "Pending bookings awaiting a provider decision",
			ConstLabels: constLabels,
		}),
		ConfirmedBookings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "bookings_confirmed",
			Help:        "Confirmed bookings held in memory",
			ConstLabels: constLabels,
		}),
		ArmedTimers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "timers_armed",
			Help:        "One-shot timers currently scheduled",
			ConstLabels: constLabels,
		}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notifications handed to the notifier by template and result",
			ConstLabels: constLabels,
		}, []string{"template", "result"}),
		PersistenceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "persistence_errors_total",
			Help:        "Durable store write failures by operation",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"operation", "status"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingTransitions,
		m.PendingBookings,
		m.ConfirmedBookings,
		m.ArmedTimers,
		m.NotificationsTotal,
		m.PersistenceErrors,
		m.DBQueryDuration,
	)

	return m
}

// Handler возвращает HTTP handler для экспорта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Transition учитывает переход состояния бронирования
func (m *Metrics) Transition(event, outcome string) {
	m.BookingTransitions.WithLabelValues(event, outcome).Inc()
}

// SetBookingCounts обновляет размеры таблиц бронирований
func (m *Metrics) SetBookingCounts(pending, confirmed int) {
	m.PendingBookings.Set(float64(pending))
	m.ConfirmedBookings.Set(float64(confirmed))
}

// SetArmedTimers обновляет количество активных таймеров
func (m *Metrics) SetArmedTimers(n int) {
	m.ArmedTimers.Set(float64(n))
}

// Notification учитывает результат доставки уведомления
func (m *Metrics) Notification(template, result string) {
	m.NotificationsTotal.WithLabelValues(template, result).Inc()
}

// PersistenceError учитывает ошибку записи в хранилище
func (m *Metrics) PersistenceError(operation string) {
	m.PersistenceErrors.WithLabelValues(operation).Inc()
}

// ObserveQuery записывает длительность SQL запроса
func (m *Metrics) ObserveQuery(operation, status string, d time.Duration) {
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}
