package combo

import (
	"context"

	"comboplanner/internal/models"
)

// Engine is the deterministic combo generator. The same scoped menu and
// preferences always produce the same recommendations in the same order.
type Engine struct {
	tuning Tuning
}

// NewEngine creates an engine with the given tuning. Values the search cannot
// run with fall back to their defaults.
func NewEngine(tuning Tuning) *Engine {
	return &Engine{tuning: tuning.withDefaults()}
}

// Name identifies the strategy
func (e *Engine) Name() string { return "generator" }

// Tuning returns the engine's constants
func (e *Engine) Tuning() Tuning { return e.tuning }

// Result is one selected combo with its template.
type Result struct {
	State    State
	Template Template
}

// Generate searches every template and returns the diversified selection.
func (e *Engine) Generate(scoped *models.ScopedMenu, prefs models.Preferences) []Result {
	templates := Templates(scoped)
	candidates := Search(e.tuning, scoped, templates, prefs)
	pool := topK(candidates, e.tuning.CandidatePool)
	selected := Diversify(pool, e.tuning.ResultCount, e.tuning.StrictDiversity)

	results := make([]Result, 0, len(selected))
	for _, s := range selected {
		results = append(results, Result{State: s, Template: templates[s.template]})
	}
	return results
}

// Recommend runs Generate and formats the results. It never fails; an empty
// list means no feasible combo exists for the request.
func (e *Engine) Recommend(_ context.Context, scoped *models.ScopedMenu, prefs models.Preferences) ([]models.Recommendation, error) {
	results := e.Generate(scoped, prefs)
	recs := make([]models.Recommendation, 0, len(results))
	for _, r := range results {
		recs = append(recs, Present(r.State, r.Template, prefs))
	}
	return recs, nil
}
