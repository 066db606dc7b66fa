// Package metrics declares the Prometheus collectors shared by the
// backend client, the hierarchy lookups, and the cascade controller.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "teagarden"

var (
	backendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Survey backend requests broken down by endpoint and result.",
	}, []string{"endpoint", "result"})

	backendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "latency_seconds",
		Help:      "Latency distribution for survey backend requests.",
		Buckets: []float64{
			0.01, 0.02, 0.05,
			0.1, 0.2, 0.5,
			1, 2, 5, 10,
		},
	}, []string{"endpoint"})

	lookupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "lookup",
		Name:      "failures_total",
		Help:      "Hierarchy dropdown lookups that failed and were replaced by an empty list.",
	}, []string{"level"})

	staleDiscards = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cascade",
		Name:      "stale_discards_total",
		Help:      "Dropdown responses dropped because the selection moved on before they arrived.",
	}, []string{"level"})

	loginThrottled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "login",
		Name:      "throttled_total",
		Help:      "Sign-in attempts refused by the login limiter, by the key that tripped.",
	}, []string{"by"})

	openPages = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cascade",
		Name:      "open_pages",
		Help:      "Filter-panel controllers currently held in the page registry.",
	})
)

// Result values for BackendRequest.
const (
	ResultOK        = "ok"
	ResultRejected  = "rejected"
	ResultTransport = "transport_error"
)

// BackendRequest records one backend call.
func BackendRequest(endpoint, result string, elapsed time.Duration) {
	backendRequests.WithLabelValues(endpoint, result).Inc()
	backendLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// LookupFailure counts a failed dropdown fetch for the given level key.
func LookupFailure(level string) {
	lookupFailures.WithLabelValues(level).Inc()
}

// StaleDiscard counts a dropped out-of-date dropdown response.
func StaleDiscard(level string) {
	staleDiscards.WithLabelValues(level).Inc()
}

// LoginThrottled counts a refused sign-in; by is "ip" or "username".
func LoginThrottled(by string) {
	loginThrottled.WithLabelValues(by).Inc()
}

// SetOpenPages reports the current registry size.
func SetOpenPages(n int) {
	openPages.Set(float64(n))
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
