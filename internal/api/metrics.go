package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dgallion1/jobpost/internal/posting"
)

// Metrics holds the Prometheus collectors fed by parse outcomes. It
// implements posting.Observer.
type Metrics struct {
	registry *prometheus.Registry

	ParsesTotal          *prometheus.CounterVec
	HeadersTotal         prometheus.Counter
	UnknownHeadingsTotal prometheus.Counter
	ParseDuration        prometheus.Histogram
	InputBytes           prometheus.Histogram
}

var _ posting.Observer = (*Metrics)(nil)

// NewMetrics registers the jobpost collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ParsesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jobpost",
				Name:      "parses_total",
				Help:      "Total number of parsed postings",
			},
			[]string{"headers"},
		),
		HeadersTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "jobpost",
			Name:      "headers_total",
			Help:      "Total number of header lines detected",
		}),
		UnknownHeadingsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "jobpost",
			Name:      "unknown_headings_total",
			Help:      "Total number of header-like lines outside the vocabulary",
		}),
		ParseDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jobpost",
			Name:      "parse_duration_seconds",
			Help:      "Duration of posting parses in seconds",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05},
		}),
		InputBytes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jobpost",
			Name:      "input_bytes",
			Help:      "Distribution of raw posting sizes",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 7),
		}),
	}
}

// ObserveParse records one parse outcome.
func (m *Metrics) ObserveParse(o posting.Outcome) {
	kind := "found"
	if o.NoHeaders {
		kind = "none"
	}
	m.ParsesTotal.WithLabelValues(kind).Inc()
	m.HeadersTotal.Add(float64(o.Headers))
	m.UnknownHeadingsTotal.Add(float64(o.UnknownHeadings))
	m.ParseDuration.Observe(o.Duration.Seconds())
	m.InputBytes.Observe(float64(o.Bytes))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
