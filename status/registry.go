package status

import "sync/atomic"

// Metric keys updated by the countdown widget
const (
	KeyTicks     = "countdown.ticks"
	KeyStarts    = "countdown.starts"
	KeyCompleted = "countdown.completed"
	KeyRunning   = "countdown.running"
)

// Registry is the central counters facade
// Components cache pointers during init; event handlers write directly to atomics
type Registry struct {
	Bools *MetricMap[atomic.Bool]
	Ints  *MetricMap[atomic.Int64]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools: NewMetricMap[atomic.Bool](),
		Ints:  NewMetricMap[atomic.Int64](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count()
}

// Snapshot copies integer counters into a plain map, keyed as registered
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.Ints.Count())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	return out
}
