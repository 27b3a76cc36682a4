package combo

import "comboplanner/internal/models"

func intp(v int) *int { return &v }
func pricep(v float64) *float64 { return &v }

func item(name string, spice int, price float64, tags ...string) models.MenuItem {
	return models.MenuItem{Name: name, Spice: intp(spice), Price: pricep(price), Tags: tags}
}

func dinnerMenu() *models.ScopedMenu {
	return &models.ScopedMenu{
		Categories: map[string][]models.MenuItem{
			"antojitos": {
				item("Ceviche", 2, 16, "seafood", "fresh"),
				item("Chicken Empanadas", 2, 11, "shareable"),
				item("Chorizo Bites", 3, 12, "pork", "cheese"),
			},
			"tacos": {
				item("Baja Fish", 1, 15, "seafood", "fresh"),
				item("Carnitas", 2, 14, "pork"),
				item("Crispy Cauliflower", 2, 13, "vegetarian", "crispy"),
			},
			"sides": {
				item("Street Corn", 2, 6, "vegetarian", "cheese"),
				item("Black Beans", 1, 5, "vegetarian"),
			},
			"soup_salad":  {item("Tortilla Soup", 2, 9, "vegetarian", "warm")},
			"quesadillas": {item("Mushroom Quesadilla", 1, 12, "vegetarian", "cheese")},
			"enchiladas":  {item("Spinach Enchiladas", 1, 16, "vegetarian", "creamy")},
			"fajitas":     {item("Steak Fajitas", 2, 32, "shareable", "sizzling")},
			"desserts":    {},
			"entrees":     {},
		},
		Beverages: map[string][]models.MenuItem{
			"beer":       {{Name: "Corona", Price: pricep(6)}, {Name: "Modelo", Price: pricep(7)}},
			"na":         {{Name: "Horchata", Price: pricep(5)}},
			"margaritas": {{Name: "Nadarita", Price: pricep(11)}},
		},
	}
}

func brunchMenu() *models.ScopedMenu {
	return &models.ScopedMenu{
		Categories: map[string][]models.MenuItem{
			"entrees": {
				item("Chilaquiles", 2, 15, "vegetarian", "crispy"),
				item("Huevos Rancheros", 2, 14, "vegetarian", "fresh"),
			},
			"sides":    {item("Fresh Fruit", 1, 6, "fresh")},
			"desserts": {item("Churro Waffle", 1, 10, "sweet")},
		},
		Beverages: map[string][]models.MenuItem{},
	}
}

func dinnerPrefs() models.Preferences {
	return models.Preferences{
		Meal:      models.MealDinner,
		PartySize: 2,
		Diet:      []string{},
		Spice:     models.SpiceMedium,
		Alcohol:   models.AlcoholBeer,
		Portion:   models.PortionLight,
	}
}

func vegetarianOnly(scoped *models.ScopedMenu) *models.ScopedMenu {
	out := &models.ScopedMenu{Categories: map[string][]models.MenuItem{}, Beverages: scoped.Beverages}
	for cat, items := range scoped.Categories {
		kept := []models.MenuItem{}
		for _, it := range items {
			if it.HasTag("vegetarian") {
				kept = append(kept, it)
			}
		}
		out.Categories[cat] = kept
	}
	return out
}
