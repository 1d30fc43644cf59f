package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTP
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "code"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Хранилище (JSON-файл)
var (
	StorePersists = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_persist_total",
			Help: "Full document rewrites to disk",
		},
		[]string{"result"}, // ok|error
	)
	StorePersistDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "store_persist_duration_seconds",
			Help:    "Time spent writing the document to disk",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)
	StoreBackups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_backups_total",
			Help: "Backup snapshots written",
		},
		[]string{"result"}, // ok|error
	)
	StoredOrders = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_orders",
			Help: "Number of orders currently in the document",
		},
	)
)

// Заказы и события
var (
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders accepted and persisted",
		},
	)
	OrderStatusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_updates_total",
			Help: "Order status changes by target status",
		},
		[]string{"status"},
	)
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_published_total",
			Help: "Order events published to Kafka",
		},
		[]string{"type"},
	)
	EventsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_failed_total",
			Help: "Order events that could not be published",
		},
		[]string{"type"},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequests, HTTPDuration,
		StorePersists, StorePersistDuration, StoreBackups, StoredOrders,
		OrdersCreated, OrderStatusUpdates, EventsPublished, EventsFailed,
	}
}

// MustRegister: регистрирует коллекторы в default registry.
// Повторный вызов безопасен: уже зарегистрированные коллекторы пропускаются.
func MustRegister() {
	for _, c := range collectors() {
		if err := prometheus.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			panic(err)
		}
	}
}
