package evaluation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"comboplanner/internal/combo"
	"comboplanner/internal/logging"
	"comboplanner/internal/menu"
	"comboplanner/internal/models"
	"comboplanner/internal/monitoring"
	"comboplanner/internal/planner"
)

// ErrScenarioNotFound is returned for an unknown scenario id.
var ErrScenarioNotFound = errors.New("evaluation: scenario not found")

// MaxVariants bounds how many regenerate steps one evaluation may run.
const MaxVariants = models.MaxVariant + 1

// Evaluator runs recommendation strategies against preset guest scenarios and
// scores the output offline. Every variant of a scenario is one regenerate step.
type Evaluator struct {
	provider  menu.Provider
	tuning    combo.Tuning
	monitor   *monitoring.Monitor
	scenarios map[string]*TestScenario
}

// TestScenario is a named preferences preset.
type TestScenario struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Description string             `json:"description"`
	Preferences models.Preferences `json:"preferences"`
}

// EvaluationResult holds the scores of one strategy on one scenario.
type EvaluationResult struct {
	Strategy string                 `json:"strategy"`
	Scenario string                 `json:"scenario"`
	Variants int                    `json:"variants"`
	Metrics  map[string]interface{} `json:"metrics"`
	Events   []EventLog             `json:"events,omitempty"`
}

// EventLog captures one variant run.
type EventLog struct {
	Timestamp time.Time              `json:"timestamp"`
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
}

// Option customizes an Evaluator
type Option func(*Evaluator)

// WithTuning scores feasibility against the given engine tuning instead of
// the defaults.
func WithTuning(t combo.Tuning) Option {
	return func(e *Evaluator) {
		e.tuning = t
	}
}

// NewEvaluator creates an evaluator over the catalog with the built-in
// scenarios. monitor may be nil.
func NewEvaluator(provider menu.Provider, monitor *monitoring.Monitor, opts ...Option) *Evaluator {
	e := &Evaluator{
		provider:  provider,
		tuning:    combo.DefaultTuning(),
		monitor:   monitor,
		scenarios: make(map[string]*TestScenario),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.loadScenarios()
	return e
}

// Tuning returns the tuning feasibility is scored against.
func (e *Evaluator) Tuning() combo.Tuning { return e.tuning }

func (e *Evaluator) loadScenarios() {
	add := func(id, name, kind, description string, req models.PreferencesRequest) {
		e.scenarios[id] = &TestScenario{
			ID:          id,
			Name:        name,
			Type:        kind,
			Description: description,
			Preferences: req.Sanitize(),
		}
	}

	add("date_night", "Date Night", "dinner",
		"Two guests sharing a light dinner with wine on a moderate budget.",
		models.PreferencesRequest{Meal: "dinner", PartySize: 2.0, Alcohol: "wine", PortionPref: "light", Budget: 70.0})
	add("solo_lunch", "Solo Lunch", "lunch",
		"One guest, mild and light, no alcohol.",
		models.PreferencesRequest{Meal: "lunch", PartySize: 1.0, Spice: "mild", Alcohol: "none", PortionPref: "light"})
	add("family_brunch", "Family Brunch", "brunch",
		"Four guests at brunch with a filling appetite and no alcohol.",
		models.PreferencesRequest{Meal: "brunch", PartySize: 4.0, Alcohol: "none", PortionPref: "filling"})
	add("veggie_group", "Veggie Group", "dietary",
		"Six vegetarian guests sharing a filling dinner.",
		models.PreferencesRequest{Meal: "dinner", PartySize: 6.0, Diet: []interface{}{models.DietVegetarian}, Alcohol: "any", PortionPref: "filling"})
	add("spicy_beer", "Spicy & Beer", "dinner",
		"Three guests who want heat and beer.",
		models.PreferencesRequest{Meal: "dinner", PartySize: 3.0, Spice: "hot", Alcohol: "beer", PortionPref: "filling"})
	add("gluten_free_light", "Gluten-Free Light", "dietary",
		"Two gluten-free guests at a light lunch with cocktails.",
		models.PreferencesRequest{Meal: "lunch", PartySize: 2.0, Diet: []interface{}{models.DietGluten}, Alcohol: "cocktail", PortionPref: "light"})
}

// HasScenario checks if a scenario exists
func (e *Evaluator) HasScenario(id string) bool {
	_, exists := e.scenarios[id]
	return exists
}

// GetScenarios returns all available scenarios, ordered by id
func (e *Evaluator) GetScenarios() []*TestScenario {
	scenarios := make([]*TestScenario, 0, len(e.scenarios))
	for _, s := range e.scenarios {
		scenarios = append(scenarios, s)
	}
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].ID < scenarios[j].ID })
	return scenarios
}

// EvaluateStrategy runs strategy over the scenario once per variant, starting
// at variant 0, and scores the combined output.
func (e *Evaluator) EvaluateStrategy(ctx context.Context, strategy planner.Strategy, scenarioID string, variants int) (*EvaluationResult, error) {
	scenario, exists := e.scenarios[scenarioID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
	}
	variants = max(1, min(variants, MaxVariants))

	catalog, err := e.provider.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("evaluation: load catalog: %w", err)
	}

	log := logging.Ctx(ctx).With().Str("strategy", strategy.Name()).Str("scenario", scenarioID).Logger()
	log.Info().Int("variants", variants).Msg("evaluating strategy")

	var (
		stats  scoreSheet
		events = make([]EventLog, 0, variants)
	)
	stats.party = scenario.Preferences.PartySize
	stats.tuning = e.tuning

	for v := 0; v < variants; v++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prefs := scenario.Preferences.WithVariant(v)
		scoped := menu.Prepare(catalog, prefs)

		start := time.Now()
		recs, err := strategy.Recommend(ctx, scoped, prefs)
		elapsed := time.Since(start)
		stats.latency += elapsed

		if err != nil {
			stats.failures++
			log.Warn().Err(err).Int("variant", v).Msg("strategy failed")
			events = append(events, EventLog{
				Timestamp: time.Now(),
				Type:      "strategy_failed",
				Data:      map[string]interface{}{"variant": v, "error": err.Error()},
			})
			continue
		}

		valid := planner.Validate(recs, scoped)
		stats.add(valid)
		events = append(events, EventLog{
			Timestamp: time.Now(),
			Type:      "variant_completed",
			Data: map[string]interface{}{
				"variant":    v,
				"count":      len(valid),
				"dropped":    len(recs) - len(valid),
				"latency_ms": elapsed.Milliseconds(),
			},
		})
	}

	metrics := stats.metrics(variants)
	if e.monitor != nil {
		e.monitor.RecordEvaluationResult(strategy.Name(), scenarioID, metrics)
	}

	return &EvaluationResult{
		Strategy: strategy.Name(),
		Scenario: scenarioID,
		Variants: variants,
		Metrics:  metrics,
		Events:   events,
	}, nil
}
