package combo

import "comboplanner/internal/models"

var defaultPrices = map[models.MenuCategory]float64{
	models.CategoryAntojitos:   12,
	models.CategoryTacos:       14,
	models.CategorySoupSalad:   9,
	models.CategorySides:       6,
	models.CategoryFajitas:     30,
	models.CategoryQuesadillas: 12,
	models.CategoryEnchiladas:  16,
	models.CategoryDesserts:    9,
	models.CategoryEntrees:     16,
	models.CategoryDrink:       12,
}

const fallbackPrice = 12

// portion units approximate a single guest's serving
var portionUnits = map[models.MenuCategory]float64{
	models.CategoryTacos:       1.0, // pair
	models.CategoryFajitas:     2.0, // for two
	models.CategorySides:       0.5,
	models.CategoryAntojitos:   0.5,
	models.CategorySoupSalad:   0.6,
	models.CategoryQuesadillas: 0.8,
	models.CategoryEnchiladas:  1.0,
	models.CategoryEntrees:     1.0,
	models.CategoryDesserts:    0.5,
	models.CategoryDrink:       0.0,
}

const fallbackPortion = 0.8

var categoryLabels = map[models.MenuCategory]string{
	models.CategoryAntojitos:   "Antojitos",
	models.CategoryTacos:       "Tacos",
	models.CategorySides:       "Side",
	models.CategorySoupSalad:   "Soup/Salad",
	models.CategoryFajitas:     "Fajitas",
	models.CategoryQuesadillas: "Quesadillas",
	models.CategoryEnchiladas:  "Enchiladas",
	models.CategoryDesserts:    "Dessert",
	models.CategoryEntrees:     "Entree",
	models.CategoryDrink:       "Drink",
}

// DefaultPrice returns the price assumed for an unpriced item in a category.
func DefaultPrice(cat models.MenuCategory) float64 {
	if p, ok := defaultPrices[cat]; ok {
		return p
	}
	return fallbackPrice
}

// PortionUnits returns the serving weight of one item in a category.
func PortionUnits(cat models.MenuCategory) float64 {
	if u, ok := portionUnits[cat]; ok {
		return u
	}
	return fallbackPortion
}

// Label returns the display label for a category key. Unknown keys pass through.
func Label(cat models.MenuCategory) string {
	if l, ok := categoryLabels[cat]; ok {
		return l
	}
	return string(cat)
}

// CategoryForLabel maps a display label back to its category key.
func CategoryForLabel(label string) (models.MenuCategory, bool) {
	for cat, l := range categoryLabels {
		if l == label {
			return cat, true
		}
	}
	return models.MenuCategory(label), false
}

// RecommendationPortions sums the serving weight of a presented combo.
func RecommendationPortions(rec models.Recommendation) float64 {
	var total float64
	for _, item := range rec.Items {
		cat, _ := CategoryForLabel(item.Category)
		total += PortionUnits(cat)
	}
	return total
}
