// Package metrics records solver activity.
package metrics

// Solve outcomes passed to Collector.RecordSolve.
const (
	OutcomeOK        = "ok"
	OutcomeEmpty     = "empty"
	OutcomeInvalid   = "invalid"
	OutcomeLimit     = "limit"
	OutcomeCancelled = "cancelled"
	OutcomeBusy      = "busy"
)

// Collector receives planner measurements.
type Collector interface {
	// RecordSolve records one finished plan request and its duration in seconds.
	RecordSolve(outcome string, seconds float64)
	// RecordResults records the number of ranked schedules a solve produced.
	RecordResults(count int)
	// RecordCacheLookup records whether a request was served from the result cache.
	RecordCacheLookup(hit bool)
}

// NopMetrics discards all measurements.
type NopMetrics struct{}

var _ Collector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordSolve discards the solve metric.
func (n *NopMetrics) RecordSolve(_ string, _ float64) {}

// RecordResults discards the result count.
func (n *NopMetrics) RecordResults(_ int) {}

// RecordCacheLookup discards the cache lookup.
func (n *NopMetrics) RecordCacheLookup(_ bool) {}
