package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "theraconnect"

// Metrics набор prometheus коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	BookingsCreated  *prometheus.CounterVec
	BookingConflicts prometheus.Counter
	LeavesProcessed  *prometheus.CounterVec
}

// New создает и регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает и регистрирует метрики в указанном registry
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_errors_total",
			Help:        "Database query errors",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: labels,
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: labels,
		}),
		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking",
			Name:        "created_total",
			Help:        "Bookings created, by kind (single, recurring)",
			ConstLabels: labels,
		}, []string{"kind"}),
		BookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking",
			Name:        "conflicts_total",
			Help:        "Booking attempts rejected because the slot was taken",
			ConstLabels: labels,
		}),
		LeavesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "leave",
			Name:        "processed_total",
			Help:        "Leave requests processed, by action",
			ConstLabels: labels,
		}, []string{"action"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingsCreated,
		m.BookingConflicts,
		m.LeavesProcessed,
	)

	return m
}

// ObserveBookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) ObserveBookingCreated(kind string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.BookingsCreated.WithLabelValues(kind).Add(float64(count))
}

// ObserveBookingConflict увеличивает счетчик конфликтов слотов
func (m *Metrics) ObserveBookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflicts.Inc()
}

// ObserveLeaveProcessed увеличивает счетчик обработанных отпусков
func (m *Metrics) ObserveLeaveProcessed(action string) {
	if m == nil {
		return
	}
	m.LeavesProcessed.WithLabelValues(action).Inc()
}
