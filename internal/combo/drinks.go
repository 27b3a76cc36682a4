package combo

import "comboplanner/internal/models"

var (
	fallbackNonAlcoholic = []string{"Nada Lemonade", "Pink Grapefruit Soda", "Topo Chico"}
	fallbackAny          = []string{"Nadarita", "Mezcal Margarita", "Sangria Blanco"}
)

const (
	fallbackBeer     = "Corona"
	fallbackCocktail = "Bonfire"
	fallbackWine     = "Sangria Blanco"
)

// curatedDrinks are drink names the selector may return without a catalog entry.
var curatedDrinks = func() map[string]bool {
	set := map[string]bool{fallbackBeer: true, fallbackCocktail: true, fallbackWine: true}
	for _, n := range fallbackNonAlcoholic {
		set[n] = true
	}
	for _, n := range fallbackAny {
		set[n] = true
	}
	return set
}()

// IsCuratedDrink reports whether name is one of the built-in fallback drinks.
func IsCuratedDrink(name string) bool {
	return curatedDrinks[name]
}

// SelectDrink picks a beverage name for the alcohol preference. The choice
// rotates through the matching pool by variant so regenerate requests vary.
func SelectDrink(alcohol models.Alcohol, variant int, beverages map[string][]models.MenuItem) string {
	pool := func(types ...models.BeverageType) []string {
		var out []string
		for _, t := range types {
			for _, it := range beverages[string(t)] {
				if it.Name != "" {
					out = append(out, it.Name)
				}
			}
		}
		return out
	}

	switch alcohol {
	case models.AlcoholNone:
		return rotatePick(pool(models.BeverageNA), variant, fallbackNonAlcoholic)
	case models.AlcoholBeer:
		return rotatePick(pool(models.BeverageBeer), variant, []string{fallbackBeer})
	case models.AlcoholCocktail:
		return rotatePick(pool(models.BeverageCocktails), variant, []string{fallbackCocktail})
	case models.AlcoholWine:
		return rotatePick(pool(models.BeverageSangria, models.BeverageWine), variant, []string{fallbackWine})
	default:
		mixed := pool(models.BeverageMargaritas, models.BeverageSangria, models.BeverageWine, models.BeverageBeer)
		return rotatePick(mixed, variant, fallbackAny)
	}
}

func rotatePick(names []string, variant int, fallback []string) string {
	if len(names) == 0 {
		names = fallback
	}
	return names[mod(variant, len(names))]
}

// drinkItem turns the selected drink into a synthetic menu item. Drinks are
// always priced at the drink default, whatever the catalog lists.
func drinkItem(name string) models.MenuItem {
	price := DefaultPrice(models.CategoryDrink)
	return models.MenuItem{
		Name:     name,
		Category: string(models.CategoryDrink),
		Tags:     []string{},
		Price:    &price,
	}
}
