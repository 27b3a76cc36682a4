package menu

import (
	"comboplanner/internal/models"
)

// Filter returns a copy of the scoped menu without items that violate the diet
// flags. Beverages are not diet-filtered.
func Filter(scoped *models.ScopedMenu, diet []string) *models.ScopedMenu {
	vegetarian := contains(diet, models.DietVegetarian)
	gluten := contains(diet, models.DietGluten)

	filtered := &models.ScopedMenu{
		Categories: make(map[string][]models.MenuItem, len(scoped.Categories)),
		Beverages:  make(map[string][]models.MenuItem, len(scoped.Beverages)),
	}

	for cat, items := range scoped.Categories {
		kept := make([]models.MenuItem, 0, len(items))
		for _, item := range items {
			if vegetarian && !item.HasTag(models.DietVegetarian) {
				continue
			}
			if gluten && item.HasAllergen(string(models.AllergenGluten)) {
				continue
			}
			kept = append(kept, item)
		}
		filtered.Categories[cat] = kept
	}

	for bev, items := range scoped.Beverages {
		filtered.Beverages[bev] = cloneItems(items)
	}

	return filtered
}

// Prepare scopes the catalog to the request's meal and applies its diet flags.
func Prepare(catalog *models.Catalog, prefs models.Preferences) *models.ScopedMenu {
	return Filter(Scope(catalog, prefs.Meal), prefs.Diet)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
