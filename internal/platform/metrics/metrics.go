package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP request latency by route pattern, method and status
	RequestLatency *prometheus.HistogramVec

	// Cache lookups by key family ("search", "profile") and result ("hit", "miss")
	CacheLookups *prometheus.CounterVec

	// Upstream calls by operation and outcome category
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec

	// Profile builds by completeness ("complete", "degraded")
	ProfileBuilds       *prometheus.CounterVec
	ProfileBuildLatency prometheus.Histogram

	// Circuit breaker position, 1 = open
	BreakerOpen *prometheus.GaugeVec
}

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "retrato_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route, method and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status"}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "retrato_cache_lookups_total",
			Help: "Cache lookups by key family and result",
		}, []string{"family", "result"}),

		UpstreamRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "retrato_upstream_requests_total",
			Help: "Open-data API calls by operation and outcome",
		}, []string{"operation", "outcome"}),

		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "retrato_upstream_duration_seconds",
			Help:    "Duration of open-data API calls by operation",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),

		ProfileBuilds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "retrato_profile_builds_total",
			Help: "Municipality profiles built, by completeness",
		}, []string{"completeness"}),

		ProfileBuildLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "retrato_profile_build_duration_seconds",
			Help:    "Duration of a full profile aggregation",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),

		BreakerOpen: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "retrato_circuit_breaker_open",
			Help: "1 when the named circuit breaker is open",
		}, []string{"name"}),
	}
}

// ObserveRequest records an HTTP request.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

// IncrementCacheLookup records a cache hit or miss.
func (m *Metrics) IncrementCacheLookup(family string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(family, result).Inc()
}

// ObserveUpstream records one upstream call.
func (m *Metrics) ObserveUpstream(operation, outcome string, d time.Duration) {
	if m != nil {
		m.UpstreamRequests.WithLabelValues(operation, outcome).Inc()
		m.UpstreamLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// ObserveProfileBuild records a completed aggregation.
func (m *Metrics) ObserveProfileBuild(degraded bool, d time.Duration) {
	if m == nil {
		return
	}
	completeness := "complete"
	if degraded {
		completeness = "degraded"
	}
	m.ProfileBuilds.WithLabelValues(completeness).Inc()
	m.ProfileBuildLatency.Observe(d.Seconds())
}

// SetBreakerOpen exports the breaker position.
func (m *Metrics) SetBreakerOpen(name string, open bool) {
	if m == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	m.BreakerOpen.WithLabelValues(name).Set(v)
}
