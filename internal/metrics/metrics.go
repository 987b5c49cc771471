// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "energy"

// Canonicalization outcomes.
const (
	OutcomeMerged    = "merged"
	OutcomeUnchanged = "unchanged"
)

var (
	activityWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "activities",
		Name:      "writes_total",
		Help:      "Activity store writes, labeled by operation.",
	}, []string{"operation"})

	canonicalizations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "activities",
		Name:      "canonicalizations_total",
		Help:      "Names canonicalized on write, labeled by whether an existing spelling was adopted.",
	}, []string{"outcome"})

	analyticsDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "analytics",
		Name:      "compute_duration_seconds",
		Help:      "Time spent computing an insight view, including the store read.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"view"})

	publishFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Activity change events that could not be published, labeled by event type.",
	}, []string{"type"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, labeled by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, labeled by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(
		activityWrites,
		canonicalizations,
		analyticsDuration,
		publishFailures,
		httpRequests,
		httpDuration,
	)
}

// RecordActivityWrite counts n activities written by operation (create,
// update, delete).
func RecordActivityWrite(operation string, n int) {
	if n <= 0 {
		return
	}
	activityWrites.WithLabelValues(operation).Add(float64(n))
}

// RecordCanonicalization counts a name resolution. merged is true when the
// stored spelling differs from what the caller typed.
func RecordCanonicalization(merged bool) {
	outcome := OutcomeUnchanged
	if merged {
		outcome = OutcomeMerged
	}
	canonicalizations.WithLabelValues(outcome).Inc()
}

// ObserveAnalytics records how long a view took since start.
func ObserveAnalytics(view string, start time.Time) {
	analyticsDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

func RecordPublishFailure(eventType string) {
	publishFailures.WithLabelValues(eventType).Inc()
}

// ObserveHTTPRequest records one served request. route is the matched route
// template, not the raw path, to keep label cardinality bounded.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
