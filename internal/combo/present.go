package combo

import (
	"fmt"
	"math"

	"comboplanner/internal/models"
)

const titlePrefix = "AI Combo"

// Present formats a finished state as a recommendation.
func Present(s State, tpl Template, prefs models.Preferences) models.Recommendation {
	items := make([]models.ComboItem, 0, len(s.picks))
	for _, p := range s.picks {
		items = append(items, comboItem(p.Category, p.Name))
	}

	perPerson := models.UnknownEstimate
	if prefs.PartySize > 0 {
		perPerson = FormatPrice(s.price / float64(prefs.PartySize))
	}

	return models.Recommendation{
		Title:             title(tpl.Name),
		Tags:              []string{models.TagGenerated, string(prefs.Portion)},
		Items:             items,
		EstimatePerPerson: perPerson,
		EstimateTotal:     FormatPrice(s.price),
		Rationale:         fmt.Sprintf("Balanced variety tailored for a %s meal with %s spice.", prefs.Portion, prefs.Spice),
	}
}

// FormatPrice renders a dollar estimate rounded to whole dollars.
func FormatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return models.UnknownEstimate
	}
	return fmt.Sprintf("$%d", int64(math.Round(v)))
}

func comboItem(cat models.MenuCategory, name string) models.ComboItem {
	item := models.ComboItem{Category: Label(cat), Name: name}
	if cat == models.CategoryTacos {
		item.Note = "pair"
	}
	return item
}

func title(name string) string {
	if name == "" {
		return titlePrefix
	}
	return titlePrefix + " — " + name
}
