package planner

import (
	"comboplanner/internal/combo"
	"comboplanner/internal/models"
)

// Validate drops recommendations naming any item outside the scoped menu and
// the curated drink pools, and fills missing price estimates.
func Validate(recs []models.Recommendation, scoped *models.ScopedMenu) []models.Recommendation {
	valid := make([]models.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if len(rec.Items) == 0 || !itemsKnown(rec, scoped) {
			continue
		}
		if rec.EstimatePerPerson == "" {
			rec.EstimatePerPerson = models.UnknownEstimate
		}
		if rec.EstimateTotal == "" {
			rec.EstimateTotal = models.UnknownEstimate
		}
		if rec.Tags == nil {
			rec.Tags = []string{}
		}
		valid = append(valid, rec)
	}
	return valid
}

func itemsKnown(rec models.Recommendation, scoped *models.ScopedMenu) bool {
	for _, it := range rec.Items {
		if _, ok := scoped.Lookup(it.Name); ok {
			continue
		}
		if combo.IsCuratedDrink(it.Name) {
			continue
		}
		return false
	}
	return true
}
