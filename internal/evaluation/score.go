package evaluation

import (
	"time"

	"comboplanner/internal/combo"
	"comboplanner/internal/models"
)

// scoreSheet accumulates recommendation statistics across variants.
type scoreSheet struct {
	tuning   combo.Tuning
	party    int
	recs     int
	items    int
	feasible int
	failures int
	latency  time.Duration
	names    map[string]struct{}
	drinks   map[string]struct{}
}

func (s *scoreSheet) add(recs []models.Recommendation) {
	if s.names == nil {
		s.names = make(map[string]struct{})
		s.drinks = make(map[string]struct{})
	}
	for _, rec := range recs {
		s.recs++
		s.items += len(rec.Items)
		if s.portionsFit(rec) {
			s.feasible++
		}
		for _, it := range rec.Items {
			s.names[it.Name] = struct{}{}
			if it.Category == combo.Label(models.CategoryDrink) {
				s.drinks[it.Name] = struct{}{}
			}
		}
	}
}

func (s *scoreSheet) portionsFit(rec models.Recommendation) bool {
	per := combo.RecommendationPortions(rec) / float64(max(s.party, 1))
	return per >= s.tuning.FinalPortionMin && per <= s.tuning.FinalPortionMax
}

func (s *scoreSheet) metrics(variants int) map[string]interface{} {
	m := map[string]interface{}{
		"recommendation_count": s.recs,
		"avg_items":            0.0,
		"feasible_ratio":       0.0,
		"distinct_item_ratio":  0.0,
		"drink_rotation":       len(s.drinks),
		"failures":             s.failures,
		"latency_ms":           float64(s.latency.Microseconds()) / 1000 / float64(max(variants, 1)),
	}
	if s.recs > 0 {
		m["avg_items"] = float64(s.items) / float64(s.recs)
		m["feasible_ratio"] = float64(s.feasible) / float64(s.recs)
	}
	if s.items > 0 {
		m["distinct_item_ratio"] = float64(len(s.names)) / float64(s.items)
	}
	return m
}
