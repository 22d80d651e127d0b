package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_auth_attempts_total",
		Help: "Register and login attempts by outcome",
	}, []string{"op", "result"})

	positionMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_position_mutations_total",
		Help: "Position store mutations by operation and outcome",
	}, []string{"op", "result"})

	corruptState = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_corrupt_state_total",
		Help: "Persisted values discarded because they could not be parsed",
	}, []string{"kind"})

	seededCollections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_seeded_collections_total",
		Help: "Owner collections initialized from demo data",
	}, []string{"kind"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveAuth counts a register or login attempt.
func ObserveAuth(op, result string) {
	authAttempts.WithLabelValues(op, result).Inc()
}

// ObservePositionMutation counts an add, update or remove.
func ObservePositionMutation(op, result string) {
	positionMutations.WithLabelValues(op, result).Inc()
}

// ObserveCorruptState counts a discarded persisted value of the given kind
// (session, directory, positions, candidates).
func ObserveCorruptState(kind string) {
	corruptState.WithLabelValues(kind).Inc()
}

// ObserveSeed counts a collection seeded with demo data.
func ObserveSeed(kind string) {
	seededCollections.WithLabelValues(kind).Inc()
}
