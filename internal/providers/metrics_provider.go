package providers

import (
	"time"

	"ddp/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Artifact outcomes reported by the extraction pipeline.
const (
	OutcomeOK      = "ok"
	OutcomeMissing = "missing"
	OutcomeFailed  = "failed"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ExtractionStarted()
	ExtractionFinished(platform string, duration time.Duration)
	IncArtifactOutcome(platform, outcome string)
	AddSentinelDays(platform string, n int)
}

type MetricsProvider struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	extractionDuration *prometheus.HistogramVec
	artifactOutcomes   *prometheus.CounterVec
	sentinelDays       *prometheus.CounterVec
	inFlight           prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ExtractionStarted() {
	m.inFlight.Inc()
}

func (m *MetricsProvider) ExtractionFinished(platform string, duration time.Duration) {
	m.inFlight.Dec()
	m.extractionDuration.WithLabelValues(platform).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncArtifactOutcome(platform, outcome string) {
	m.artifactOutcomes.WithLabelValues(platform, outcome).Inc()
}

func (m *MetricsProvider) AddSentinelDays(platform string, n int) {
	if n <= 0 {
		return
	}
	m.sentinelDays.WithLabelValues(platform).Add(float64(n))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ddp_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ddp_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ddp_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ddp_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		extractionDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ddp_extraction_duration_seconds",
			Help:    "Duration of a full archive extraction in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"platform"}),

		artifactOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ddp_artifacts_total",
			Help: "Extracted artifacts by outcome",
		}, []string{"platform", "outcome"}),

		sentinelDays: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ddp_sentinel_days_total",
			Help: "Timestamps replaced by the sentinel day",
		}, []string{"platform"}),

		inFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ddp_extractions_in_flight",
			Help: "Extractions currently running",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ExtractionStarted()                               {}
func (n *noopMetrics) ExtractionFinished(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncArtifactOutcome(_, _ string)                   {}
func (n *noopMetrics) AddSentinelDays(_ string, _ int)                  {}
