package metrics

import (
	"strconv"
	"sync"

	"github.com/iwvelando/staffing-planner/pkg/constants"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector backed by Prometheus. Collectors
// are created and registered on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	solves       *prometheus.CounterVec
	solveLatency prometheus.Histogram
	results      prometheus.Histogram
	cacheLookups *prometheus.CounterVec
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a Prometheus-backed collector. A nil registerer uses
// prometheus.DefaultRegisterer and an empty namespace uses
// constants.MetricsNamespace.
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = constants.MetricsNamespace
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.solves = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "planner",
			Name:      "solves_total",
			Help:      "Total plan requests by outcome (ok, empty, invalid, limit, cancelled, busy).",
		}, []string{"outcome"})

		p.solveLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "planner",
			Name:      "solve_duration_seconds",
			Help:      "Wall time of plan requests in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms .. ~4min
		})

		p.results = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "planner",
			Name:      "schedules",
			Help:      "Number of ranked schedules produced per solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 8),
		})

		p.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "planner",
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by hit (true, false).",
		}, []string{"hit"})

		p.reg.MustRegister(p.solves, p.solveLatency, p.results, p.cacheLookups)
	})
}

// RecordSolve counts the outcome and observes the duration.
func (p *PrometheusCollector) RecordSolve(outcome string, seconds float64) {
	p.ensureRegistered()
	p.solves.WithLabelValues(outcome).Inc()
	p.solveLatency.Observe(seconds)
}

// RecordResults observes the number of ranked schedules.
func (p *PrometheusCollector) RecordResults(count int) {
	p.ensureRegistered()
	p.results.Observe(float64(count))
}

// RecordCacheLookup counts a cache hit or miss.
func (p *PrometheusCollector) RecordCacheLookup(hit bool) {
	p.ensureRegistered()
	p.cacheLookups.WithLabelValues(strconv.FormatBool(hit)).Inc()
}
