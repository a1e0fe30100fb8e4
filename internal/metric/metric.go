// Package metric defines the Prometheus collectors recorded by the parse
// pipeline and served on the /metrics endpoint.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics contains the pipeline-level collectors. Label values are always
// canonical slugs, so cardinality stays bounded by the registry contents.
type Metrics struct {
	ParseRequests     *prometheus.CounterVec
	ParseDuration     *prometheus.HistogramVec
	ParseRecords      *prometheus.CounterVec
	TemplateCompiles  *prometheus.CounterVec
	TemplateCacheHits prometheus.Counter
}

// New creates a Metrics instance with all pipeline collectors.
func New() *Metrics {
	return &Metrics{
		ParseRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "netcli",
				Subsystem: "parse",
				Name:      "requests_total",
				Help:      "Total number of parse requests by outcome",
			},
			[]string{"platform", "command", "outcome"},
		),

		ParseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "netcli",
				Subsystem: "parse",
				Name:      "duration_seconds",
				Help:      "Parse request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"platform", "command"},
		),

		ParseRecords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "netcli",
				Subsystem: "parse",
				Name:      "records_total",
				Help:      "Total number of records produced by successful parses",
			},
			[]string{"platform", "command"},
		),

		TemplateCompiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "netcli",
				Subsystem: "template",
				Name:      "compiles_total",
				Help:      "Total number of template compilations by result",
			},
			[]string{"result"},
		),

		TemplateCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "netcli",
				Subsystem: "template",
				Name:      "cache_hits_total",
				Help:      "Total number of compile cache hits",
			},
		),
	}
}

// NewRegistry creates a Prometheus registry holding m together with the
// standard Go runtime and process collectors.
func NewRegistry(m *Metrics) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		m.ParseRequests,
		m.ParseDuration,
		m.ParseRecords,
		m.TemplateCompiles,
		m.TemplateCacheHits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}
