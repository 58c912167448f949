package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	// Доменные метрики
	HistoryPages        *prometheus.CounterVec
	Mutations           *prometheus.CounterVec
	SelectionConflicts  prometheus.Counter
	FeedDeliveries      *prometheus.CounterVec
	ActiveFeedSessions  prometheus.Gauge
	SubscriptionResyncs *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "route"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: labels,
		}, []string{"operation"}),
		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBOpenConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUse: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdle: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		HistoryPages: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "feed_history_pages_total",
			Help:        "History page loads by result",
			ConstLabels: labels,
		}, []string{"result"}),
		Mutations: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_mutations_total",
			Help:        "Reservation mutations by operation and outcome",
			ConstLabels: labels,
		}, []string{"operation", "outcome"}),
		SelectionConflicts: f.NewCounter(prometheus.CounterOpts{
			Name:        "calendar_selection_conflicts_total",
			Help:        "Range selections aborted because of occupied dates",
			ConstLabels: labels,
		}),
		FeedDeliveries: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "subscription_deliveries_total",
			Help:        "Full-set deliveries from push subscriptions",
			ConstLabels: labels,
		}, []string{"source", "result"}),
		ActiveFeedSessions: f.NewGauge(prometheus.GaugeOpts{
			Name:        "feed_sessions_active",
			Help:        "Operator feed sessions currently cached",
			ConstLabels: labels,
		}),
		SubscriptionResyncs: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "subscription_resyncs_total",
			Help:        "Periodic full resyncs of push subscriptions",
			ConstLabels: labels,
		}, []string{"result"}),
	}
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveHistoryPage учитывает загрузку страницы истории (result: ok, error)
func (m *Metrics) ObserveHistoryPage(result string) {
	if m == nil {
		return
	}
	m.HistoryPages.WithLabelValues(result).Inc()
}

// ObserveMutation учитывает результат мутации бронирования
func (m *Metrics) ObserveMutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(operation, outcome).Inc()
}

// ObserveSelectionConflict учитывает конфликт при выборе диапазона
func (m *Metrics) ObserveSelectionConflict() {
	if m == nil {
		return
	}
	m.SelectionConflicts.Inc()
}

// ObserveDelivery учитывает доставку полного набора из подписки
func (m *Metrics) ObserveDelivery(source, result string) {
	if m == nil {
		return
	}
	m.FeedDeliveries.WithLabelValues(source, result).Inc()
}

// ObserveResync учитывает периодическую ресинхронизацию
func (m *Metrics) ObserveResync(result string) {
	if m == nil {
		return
	}
	m.SubscriptionResyncs.WithLabelValues(result).Inc()
}

// SetActiveSessions выставляет число активных сессий ленты
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveFeedSessions.Set(float64(n))
}
