package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests by method, route pattern and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPDuration records request latency by method and route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnect_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// AuthRejections counts requests refused by the auth guard by reason
	// (missing, invalid, revoked). Clients only ever see two messages.
	AuthRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_auth_rejections_total",
		Help: "Requests rejected by the auth guard",
	}, []string{"reason"})

	// StoreLatency records document store latency by collection and operation.
	StoreLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnect_store_latency_seconds",
		Help:    "Document store call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "operation"})
)

// TrackStore returns a function that records store latency when called (e.g. defer).
func TrackStore(collection, operation string) func() {
	start := time.Now()
	return func() {
		StoreLatency.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
	}
}
