package planner

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"comboplanner/internal/logging"
	"comboplanner/internal/models"
	"comboplanner/internal/monitoring"
)

// ErrNoStrategies is returned by a chain with nothing to run.
var ErrNoStrategies = errors.New("planner: no strategies configured")

// Result is the outcome of a chain run.
type Result struct {
	Recommendations []models.Recommendation
	// Strategy names the tier that answered, or is empty when none did.
	Strategy string
}

// Chain tries strategies in order and returns the first non-empty, valid answer.
type Chain struct {
	strategies []Strategy
	metrics    *monitoring.MetricsCollector
	logger     zerolog.Logger
}

// NewChain creates a fallback chain over strategies
func NewChain(metrics *monitoring.MetricsCollector, strategies ...Strategy) *Chain {
	return &Chain{
		strategies: strategies,
		metrics:    metrics,
		logger:     logging.With("planner"),
	}
}

// Strategies returns the names of the configured tiers, in order
func (c *Chain) Strategies() []string {
	names := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Run invokes each strategy until one yields valid recommendations. Strategy
// errors are logged and skipped; an all-empty run is a valid result.
func (c *Chain) Run(ctx context.Context, scoped *models.ScopedMenu, prefs models.Preferences) (Result, error) {
	if len(c.strategies) == 0 {
		return Result{}, ErrNoStrategies
	}

	log := c.logger.With().Str("request_id", logging.RequestID(ctx)).Logger()
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		start := time.Now()
		recs, err := s.Recommend(ctx, scoped, prefs)
		if err != nil {
			reason := "error"
			var r reasoner
			if errors.As(err, &r) {
				reason = r.FailureReason()
				c.metrics.RecordLLMFailure(reason)
			}
			c.metrics.RecordStrategyError(s.Name(), reason)
			log.Warn().Err(err).Str("strategy", s.Name()).Str("reason", reason).Msg("strategy failed, falling through")
			continue
		}

		valid := Validate(recs, scoped)
		if dropped := len(recs) - len(valid); dropped > 0 {
			log.Warn().Str("strategy", s.Name()).Int("dropped", dropped).Msg("discarded recommendations with unknown items")
		}
		if len(valid) == 0 {
			log.Debug().Str("strategy", s.Name()).Msg("strategy returned nothing usable")
			continue
		}

		elapsed := time.Since(start)
		c.metrics.RecordRequest(s.Name(), elapsed, len(valid))
		log.Info().Str("strategy", s.Name()).Int("count", len(valid)).Int64("latency_ms", elapsed.Milliseconds()).Msg("recommendations ready")
		return Result{Recommendations: valid, Strategy: s.Name()}, nil
	}

	c.metrics.RecordRequest("none", 0, 0)
	log.Info().Msg("no strategy produced recommendations")
	return Result{Recommendations: []models.Recommendation{}}, nil
}
