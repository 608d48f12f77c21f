// Package metrics exposes Prometheus counters for HTTP traffic, content
// writes and the landing page cache.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Write outcomes recorded by IncContentWrite.
const (
	WriteOK          = "ok"
	WriteProbe       = "probe"
	WriteInvalid     = "invalid"
	WriteFailed      = "failed"
	WriteBadEncoding = "bad_json"
)

// Recorder receives application measurements.
type Recorder interface {
	ObserveRequest(route string, status int, duration time.Duration)
	IncContentWrite(result string)
	IncCacheHit()
	IncCacheMiss()
	IncInvalidationFailure()
	Handler() http.Handler
}

// Metrics records into a private Prometheus registry.
type Metrics struct {
	registry             *prometheus.Registry
	requestsTotal        *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	contentWrites        *prometheus.CounterVec
	cacheHits            prometheus.Counter
	cacheMisses          prometheus.Counter
	invalidationFailures prometheus.Counter
}

// New returns a Prometheus-backed Recorder, or a no-op one when disabled.
func New(enabled bool) Recorder {
	if !enabled {
		return noop{}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "linkpage_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "status"}),

		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "linkpage_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		contentWrites: f.NewCounterVec(prometheus.CounterOpts{
			Name: "linkpage_content_writes_total",
			Help: "Authenticated content POSTs by outcome",
		}, []string{"result"}),

		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "linkpage_page_cache_hits_total",
			Help: "Landing page cache hits",
		}),

		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "linkpage_page_cache_misses_total",
			Help: "Landing page cache misses",
		}),

		invalidationFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "linkpage_cache_invalidation_failures_total",
			Help: "Page cache invalidations that failed after a write",
		}),
	}
}

func (m *Metrics) ObserveRequest(route string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(route, statusBucket(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) IncContentWrite(result string) {
	m.contentWrites.WithLabelValues(result).Inc()
}

func (m *Metrics) IncCacheHit()            { m.cacheHits.Inc() }
func (m *Metrics) IncCacheMiss()           { m.cacheMisses.Inc() }
func (m *Metrics) IncInvalidationFailure() { m.invalidationFailures.Inc() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func statusBucket(code int) string {
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

// noop is used when metrics are disabled.
type noop struct{}

func (noop) ObserveRequest(string, int, time.Duration) {}
func (noop) IncContentWrite(string)                    {}
func (noop) IncCacheHit()                              {}
func (noop) IncCacheMiss()                             {}
func (noop) IncInvalidationFailure()                   {}
func (noop) Handler() http.Handler                     { return http.NotFoundHandler() }
