// Package observability declares the Prometheus metrics of the service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dispatch"

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Orders accepted by POST /v1/orders",
	})

	// OrderTransitionsTotal is labelled by operation and result, where result
	// is one of the Result constants.
	OrderTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "order_transitions_total", Help: "Lifecycle operations by outcome"},
		[]string{"operation", "result"},
	)

	OrdersByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: namespace, Name: "orders_by_status", Help: "Stored orders per status, refreshed by the stats job"},
		[]string{"status"},
	)

	EventPublishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_publish_failures_total",
		Help:      "Order events that could not be delivered after commit",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Transition results.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultNotFound = "not_found"
	ResultError    = "error"
)
