package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldrates_provider_attempts_total",
			Help: "Total number of provider attempts per resolver, provider, and result",
		},
		[]string{"resolver", "provider", "result"},
	)

	FallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldrates_fallback_total",
			Help: "Total number of resolutions that fell back to the safe default",
		},
		[]string{"resolver"},
	)

	ResolveDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goldrates_resolve_duration_seconds",
			Help:    "Resolution duration in seconds per resolver",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resolver"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldrates_http_requests_total",
			Help: "Total number of HTTP requests per path and status code",
		},
		[]string{"path", "code"},
	)
)

// Attempt result label values.
const (
	ResultOK       = "ok"
	ResultFetch    = "fetch_error"
	ResultParse    = "parse_error"
	ResultInvalid  = "validation_error"
	ResultThrottle = "throttled"
)
