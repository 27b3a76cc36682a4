package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector handles metrics collection and reporting
type MetricsCollector struct {
	registry *prometheus.Registry
	metrics  map[string]prometheus.Collector
}

// NewMetricsCollector creates a new metrics collector on a private registry
func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "combo_requests_total",
			Help: "Combo requests served, by the strategy that produced the answer",
		},
		[]string{"strategy"},
	)

	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "combo_generation_seconds",
			Help:    "Time spent producing recommendations",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{"strategy"},
	)

	recommendations := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "combo_recommendations",
			Help:    "Recommendations returned per request",
			Buckets: prometheus.LinearBuckets(0, 1, 6),
		},
	)

	llmFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "combo_llm_failures_total",
			Help: "LLM strategy failures, by reason",
		},
		[]string{"reason"},
	)

	strategyErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "combo_strategy_errors_total",
			Help: "Strategy errors that made the chain fall through, by strategy and reason",
		},
		[]string{"strategy", "reason"},
	)

	rateLimited := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "combo_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	metrics := map[string]prometheus.Collector{
		"requests":        requests,
		"latency":         latency,
		"recommendations": recommendations,
		"llm_failures":    llmFailures,
		"strategy_errors": strategyErrors,
		"rate_limited":    rateLimited,
	}

	for _, metric := range metrics {
		registry.MustRegister(metric)
	}

	return &MetricsCollector{
		registry: registry,
		metrics:  metrics,
	}
}

// Registry exposes the underlying registry
func (mc *MetricsCollector) Registry() *prometheus.Registry {
	return mc.registry
}

// Handler serves the registry in the Prometheus exposition format
func (mc *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(mc.registry, promhttp.HandlerOpts{})
}

// RecordRequest records a served request
func (mc *MetricsCollector) RecordRequest(strategy string, duration time.Duration, count int) {
	if mc == nil {
		return
	}
	if counter, ok := mc.metrics["requests"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues(strategy).Inc()
	}
	if histogram, ok := mc.metrics["latency"].(*prometheus.HistogramVec); ok {
		histogram.WithLabelValues(strategy).Observe(duration.Seconds())
	}
	if histogram, ok := mc.metrics["recommendations"].(prometheus.Histogram); ok {
		histogram.Observe(float64(count))
	}
}

// RecordLLMFailure counts a failed LLM attempt
func (mc *MetricsCollector) RecordLLMFailure(reason string) {
	if mc == nil {
		return
	}
	if counter, ok := mc.metrics["llm_failures"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues(reason).Inc()
	}
}

// RecordStrategyError counts a strategy error the chain fell through on
func (mc *MetricsCollector) RecordStrategyError(strategy, reason string) {
	if mc == nil {
		return
	}
	if counter, ok := mc.metrics["strategy_errors"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues(strategy, reason).Inc()
	}
}

// RecordRateLimited counts a rejected request
func (mc *MetricsCollector) RecordRateLimited() {
	if mc == nil {
		return
	}
	if counter, ok := mc.metrics["rate_limited"].(prometheus.Counter); ok {
		counter.Inc()
	}
}
