package monitoring

import (
	"sync"
	"time"
)

// Monitor keeps a JSON-friendly snapshot of recent activity for the playground
// and the debug endpoint. Counters and last-value gauges share one key space.
// A nil Monitor ignores writes.
type Monitor struct {
	mu       sync.RWMutex
	counters map[string]float64
	gauges   map[string]interface{}
	started  time.Time
	now      func() time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		counters: make(map[string]float64),
		gauges:   make(map[string]interface{}),
		started:  time.Now(),
		now:      time.Now,
	}
}

// RecordMetric sets a gauge
func (m *Monitor) RecordMetric(name string, value interface{}) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.gauges[name] = value
	m.mu.Unlock()
}

// Increment adds delta to a counter
func (m *Monitor) Increment(name string, delta float64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.counters[name] += delta
	m.mu.Unlock()
}

// GetMetric returns a counter or gauge by name
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.counters[name]; ok {
		return v, true
	}
	v, ok := m.gauges[name]
	return v, ok
}

// GetMetrics returns a copy of every counter and gauge plus uptime_seconds
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]interface{}, len(m.counters)+len(m.gauges)+1)
	for k, v := range m.gauges {
		out[k] = v
	}
	for k, v := range m.counters {
		out[k] = v
	}
	out["uptime_seconds"] = m.now().Sub(m.started).Seconds()
	return out
}

// RecordRecommendation records the outcome of one combo request
func (m *Monitor) RecordRecommendation(strategy string, count int, latency time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters["requests_total"]++
	m.counters["requests_"+strategy]++
	if count == 0 {
		m.counters["empty_results"]++
	}
	m.gauges["last_strategy"] = strategy
	m.gauges["last_latency_ms"] = float64(latency.Microseconds()) / 1000
}

// RecordEvaluationResult stores evaluation metrics under
// "<strategy>_<scenario>_<metric>" with a last_evaluated timestamp.
func (m *Monitor) RecordEvaluationResult(strategy, scenario string, metrics map[string]interface{}) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := strategy + "_" + scenario + "_"
	for k, v := range metrics {
		m.gauges[prefix+k] = v
	}
	m.gauges[prefix+"last_evaluated"] = m.now().Format(time.RFC3339)
	m.counters["evaluations_total"]++
}
