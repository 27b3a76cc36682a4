package monitoring

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCollector(t *testing.T) {
	mc := NewMetricsCollector()
	mc.RecordRequest("generator", 5*time.Millisecond, 3)
	mc.RecordRequest("rules", time.Millisecond, 1)
	mc.RecordLLMFailure("rate-limit")
	mc.RecordLLMFailure("rate-limit")
	mc.RecordStrategyError("llm", "rate-limit")
	mc.RecordRateLimited()

	assert.Equal(t, 2, testutil.CollectAndCount(mc.metrics["requests"]))
	assert.Equal(t, 2.0, testutil.ToFloat64(mc.metrics["llm_failures"]))
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.metrics["rate_limited"]))
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.metrics["strategy_errors"]))

	rec := httptest.NewRecorder()
	mc.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `combo_requests_total{strategy="generator"} 1`)
}

func TestMetricsCollectorNilSafe(t *testing.T) {
	var mc *MetricsCollector
	assert.NotPanics(t, func() {
		mc.RecordRequest("generator", time.Millisecond, 1)
		mc.RecordLLMFailure("upstream")
		mc.RecordStrategyError("llm", "upstream")
		mc.RecordRateLimited()
	})
}
