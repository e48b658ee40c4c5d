package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultNamespace = "fantasy_admin"

	ModePreview       = "preview"
	ModeAuthoritative = "authoritative"

	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records
// nothing, which keeps use cases free of nil checks in tests.
type Metrics struct {
	registry *prometheus.Registry

	pointsComputed  *prometheus.CounterVec
	corrections     prometheus.Counter
	scoringRuns     *prometheus.CounterVec
	scoringDuration prometheus.Histogram
	feedRequests    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

type Option func(*options)

type options struct {
	namespace      string
	buckets        []float64
	processMetrics bool
}

func WithNamespace(namespace string) Option {
	return func(o *options) {
		if namespace != "" {
			o.namespace = namespace
		}
	}
}

func WithHistogramBuckets(buckets []float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// WithProcessMetrics registers the Go runtime and process collectors.
func WithProcessMetrics() Option {
	return func(o *options) {
		o.processMetrics = true
	}
}

// New registers all collectors on a private registry.
func New(opts ...Option) *Metrics {
	o := options{namespace: defaultNamespace, buckets: prometheus.DefBuckets}
	for _, opt := range opts {
		opt(&o)
	}

	reg := prometheus.NewRegistry()
	if o.processMetrics {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	auto := promauto.With(reg)

	return &Metrics{
		registry: reg,
		pointsComputed: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "scoring",
			Name:      "points_computed_total",
			Help:      "Number of fantasy point computations by mode.",
		}, []string{"mode"}),
		corrections: auto.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "scoring",
			Name:      "corrections_applied_total",
			Help:      "Number of admin stat corrections persisted.",
		}),
		scoringRuns: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "scoring",
			Name:      "gameweek_runs_total",
			Help:      "Number of gameweek scoring runs by result.",
		}, []string{"result"}),
		scoringDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "scoring",
			Name:      "gameweek_run_duration_seconds",
			Help:      "Duration of gameweek scoring runs.",
			Buckets:   o.buckets,
		}),
		feedRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "statsfeed",
			Name:      "requests_total",
			Help:      "Stats feed requests by result.",
		}, []string{"result"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   o.buckets,
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) AddPointsComputed(mode string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.pointsComputed.WithLabelValues(mode).Add(float64(n))
}

func (m *Metrics) IncCorrections() {
	if m == nil {
		return
	}
	m.corrections.Inc()
}

func (m *Metrics) ObserveScoringRun(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.scoringRuns.WithLabelValues(resultLabel(err)).Inc()
	m.scoringDuration.Observe(duration.Seconds())
}

func (m *Metrics) IncFeedRequest(err error) {
	if m == nil {
		return
	}
	m.feedRequests.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) ObserveHTTPRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func resultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
