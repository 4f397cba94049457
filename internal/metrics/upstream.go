package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upstream provider labels.
const (
	ProviderAirtable  = "airtable"
	ProviderGeocoding = "geocoding"
)

// Search pipeline Prometheus metrics.
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bistrohunter",
			Name:      "upstream_requests_total",
			Help:      "Total number of requests to the record store and geocoder",
		},
		[]string{"provider", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bistrohunter",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bistrohunter",
			Name:      "upstream_errors_total",
			Help:      "Total upstream errors",
		},
		[]string{"provider", "error_type"},
	)

	RecordCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bistrohunter",
			Name:      "record_cache_total",
			Help:      "Record store cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	RadiusSteps = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bistrohunter",
			Name:      "search_radius_steps",
			Help:      "Store queries issued per anchor before the search stopped",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10, 15, 20},
		},
		[]string{"mode"},
	)

	ZoneResolutionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bistrohunter",
			Name:      "zone_resolution_failures_total",
			Help:      "Zones skipped because they could not be geocoded",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers the search pipeline metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamRequestDuration)
	prometheus.MustRegister(UpstreamErrorsTotal)
	prometheus.MustRegister(RecordCacheTotal)
	prometheus.MustRegister(RadiusSteps)
	prometheus.MustRegister(ZoneResolutionFailuresTotal)
	searchMetricsRegistered = true
}

// ObserveUpstream records the outcome and latency of one upstream call.
// errorType is empty on success.
func ObserveUpstream(provider string, seconds float64, errorType string) {
	if errorType != "" {
		UpstreamRequestsTotal.WithLabelValues(provider, "error").Inc()
		UpstreamErrorsTotal.WithLabelValues(provider, errorType).Inc()
		return
	}
	UpstreamRequestsTotal.WithLabelValues(provider, "success").Inc()
	UpstreamRequestDuration.WithLabelValues(provider).Observe(seconds)
}
