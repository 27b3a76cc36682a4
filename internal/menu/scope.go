// Package menu builds per-request views of the restaurant catalog.
package menu

import (
	"slices"

	"comboplanner/internal/models"
)

// Scope builds the view of the catalog for one meal period. Each category uses
// the requested period's items when present and falls back to dinner otherwise.
// The whole beverage section is attached regardless of period.
func Scope(catalog *models.Catalog, meal models.Meal) *models.ScopedMenu {
	scoped := &models.ScopedMenu{
		Categories: make(map[string][]models.MenuItem, len(models.KnownCategories)),
		Beverages:  make(map[string][]models.MenuItem, len(models.KnownBeverages)),
	}
	if catalog == nil {
		catalog = &models.Catalog{}
	}

	base := catalog.Meals[string(meal)]
	dinner := catalog.Meals[string(models.MealDinner)]

	for _, cat := range categoryNames(base, dinner) {
		items := base[cat]
		if len(items) == 0 {
			items = dinner[cat]
		}
		scoped.Categories[cat] = cloneItems(items)
	}

	for _, bev := range models.KnownBeverages {
		scoped.Beverages[string(bev)] = cloneItems(catalog.Beverages[string(bev)])
	}
	for bev, items := range catalog.Beverages {
		if _, ok := scoped.Beverages[bev]; !ok {
			scoped.Beverages[bev] = cloneItems(items)
		}
	}

	return scoped
}

func categoryNames(periods ...map[string][]models.MenuItem) []string {
	names := make([]string, 0, len(models.KnownCategories))
	seen := make(map[string]bool)
	for _, cat := range models.KnownCategories {
		names = append(names, string(cat))
		seen[string(cat)] = true
	}
	for _, period := range periods {
		for cat := range period {
			if !seen[cat] {
				names = append(names, cat)
				seen[cat] = true
			}
		}
	}
	return names
}

func cloneItems(items []models.MenuItem) []models.MenuItem {
	if items == nil {
		return []models.MenuItem{}
	}
	return slices.Clone(items)
}
