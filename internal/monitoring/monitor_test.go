package monitoring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("last_strategy", "rules")
	m.Increment("requests_total", 2)

	metrics := m.GetMetrics()

	assert.Equal(t, "rules", metrics["last_strategy"])
	assert.Equal(t, 2.0, metrics["requests_total"])
	assert.Contains(t, metrics, "uptime_seconds")

	metrics["last_strategy"] = "mutated"
	v, ok := m.GetMetric("last_strategy")
	require.True(t, ok)
	assert.Equal(t, "rules", v, "snapshot is a copy")
}

func TestMonitor_RecordEvaluationResult(t *testing.T) {
	m := NewMonitor()
	fixed := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	m.RecordEvaluationResult("llm", "date_night", map[string]interface{}{
		"feasible_ratio": 0.85,
		"latency_ms":     123,
	})

	metrics := m.GetMetrics()
	assert.Equal(t, 0.85, metrics["llm_date_night_feasible_ratio"])
	assert.Equal(t, "2026-10-16T12:00:00Z", metrics["llm_date_night_last_evaluated"])
	assert.Equal(t, 1.0, metrics["evaluations_total"])
}

func TestMonitorRecordRecommendation(t *testing.T) {
	m := NewMonitor()

	m.RecordRecommendation("generator", 3, 1500*time.Microsecond)
	m.RecordRecommendation("none", 0, time.Millisecond)

	metrics := m.GetMetrics()
	assert.Equal(t, 2.0, metrics["requests_total"])
	assert.Equal(t, 1.0, metrics["requests_generator"])
	assert.Equal(t, 1.0, metrics["empty_results"])
	assert.Equal(t, "none", metrics["last_strategy"])
	assert.Equal(t, 1.0, metrics["last_latency_ms"])
}

func TestMonitorConcurrentIncrement(t *testing.T) {
	m := NewMonitor()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Increment("hits", 1)
		}()
	}
	wg.Wait()

	v, ok := m.GetMetric("hits")
	require.True(t, ok)
	assert.Equal(t, 50.0, v)
}

func TestMonitorNilIgnoresWrites(t *testing.T) {
	var m *Monitor
	assert.NotPanics(t, func() {
		m.RecordMetric("x", 1)
		m.Increment("x", 1)
		m.RecordRecommendation("rules", 1, time.Millisecond)
		m.RecordEvaluationResult("rules", "solo_lunch", nil)
	})
}
