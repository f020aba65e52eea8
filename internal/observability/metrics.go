package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for SnapshotRequests.
const (
	OutcomeSuccess         = "success"
	OutcomeConfigMissing   = "config_missing"
	OutcomeDataUnavailable = "data_unavailable"
	OutcomeInvalidInput    = "invalid_input"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	SnapshotRequests *prometheus.CounterVec // labels: outcome
	FetchDuration    prometheus.Histogram
	SnapshotPoints   prometheus.Gauge
	SnapshotTopZones prometheus.Gauge

	// HTTP metrics.
	HTTPRequests *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration *prometheus.HistogramVec // labels: route
	RateLimited  prometheus.Counter

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		SnapshotRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "danger_zones",
			Name:      "snapshot_requests_total",
			Help:      "Danger zone snapshot requests by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "danger_zones",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a warehouse snapshot fetch, including connection setup.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SnapshotPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "danger_zones",
			Name:      "snapshot_points",
			Help:      "Number of points in the most recently served snapshot.",
		}),
		SnapshotTopZones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "danger_zones",
			Name:      "snapshot_top_zones",
			Help:      "Number of top zones in the most recently served snapshot.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "danger_zones",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "danger_zones",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "danger_zones",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "danger_zones",
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "danger_zones",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "danger_zones",
			Name:      "geocode_enabled",
			Help:      "1 when geocoding enrichment is enabled, 0 otherwise.",
		}),
	}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SnapshotRequests,
		m.FetchDuration,
		m.SnapshotPoints,
		m.SnapshotTopZones,
		m.HTTPRequests,
		m.HTTPDuration,
		m.RateLimited,
		m.GeocodeRequests,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
