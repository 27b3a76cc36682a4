package agents

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tmc/langchaingo/llms"

	"comboplanner/internal/logging"
	"comboplanner/internal/models"
)

// MenuPlanner asks an LLM for combos restricted to the scoped menu.
type MenuPlanner struct {
	*BaseAgent
	breaker     *gobreaker.CircuitBreaker[string]
	modelName   string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	logger      zerolog.Logger
}

// PlannerOption configures a MenuPlanner
type PlannerOption func(*MenuPlanner)

// WithModelName overrides the model requested on each call
func WithModelName(name string) PlannerOption {
	return func(p *MenuPlanner) { p.modelName = name }
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float64) PlannerOption {
	return func(p *MenuPlanner) { p.temperature = t }
}

// WithMaxTokens caps the response length
func WithMaxTokens(n int) PlannerOption {
	return func(p *MenuPlanner) { p.maxTokens = n }
}

// WithTimeout bounds each model call
func WithTimeout(d time.Duration) PlannerOption {
	return func(p *MenuPlanner) { p.timeout = d }
}

// NewMenuPlanner creates the LLM strategy around model
func NewMenuPlanner(model llms.Model, opts ...PlannerOption) *MenuPlanner {
	p := &MenuPlanner{
		BaseAgent:   NewBaseAgent(RoleMenuPlanner, model),
		temperature: 0.7,
		maxTokens:   600,
		timeout:     20 * time.Second,
		logger:      logging.With("menu_planner"),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "menu-planner-llm",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
	return p
}

// Name identifies the strategy
func (p *MenuPlanner) Name() string { return "llm" }

// BreakerState reports the circuit breaker state
func (p *MenuPlanner) BreakerState() gobreaker.State {
	return p.breaker.State()
}

// Recommend asks the model for combos. Every failure comes back as an
// *UpstreamError carrying a reason.
func (p *MenuPlanner) Recommend(ctx context.Context, scoped *models.ScopedMenu, prefs models.Preferences) ([]models.Recommendation, error) {
	prompt, err := BuildPrompt(scoped, prefs)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	opts := []llms.CallOption{
		llms.WithTemperature(p.temperature),
		llms.WithMaxTokens(p.maxTokens),
		llms.WithJSONMode(),
	}
	if p.modelName != "" {
		opts = append(opts, llms.WithModel(p.modelName))
	}

	start := time.Now()
	raw, err := p.breaker.Execute(func() (string, error) {
		return p.complete(ctx, SystemPrompt, prompt, opts...)
	})
	if err != nil {
		if errors.Is(err, ErrNoModel) {
			return nil, err
		}
		failure := classify(err)
		p.AddMemory(Event{Type: "error", Content: failure.Error(), Metadata: map[string]interface{}{"reason": failure.Reason}})
		return nil, failure
	}

	recs, err := ParseRecommendations(raw)
	if err != nil {
		p.AddMemory(Event{Type: "invalid_response", Content: truncate(raw, 400)})
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			return nil, upstream
		}
		return nil, &UpstreamError{Reason: ReasonInvalidResponse, Err: err}
	}

	for i := range recs {
		if !recs[i].HasTag(models.TagLLM) {
			recs[i].Tags = append(recs[i].Tags, models.TagLLM)
		}
	}
	p.AddMemory(Event{
		Type:    "recommendations",
		Content: truncate(raw, 400),
		Metadata: map[string]interface{}{
			"count":      len(recs),
			"latency_ms": time.Since(start).Milliseconds(),
		},
	})
	return recs, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
