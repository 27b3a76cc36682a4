package combo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comboplanner/internal/models"
)

func pools(entries map[models.BeverageType][]string) map[string][]models.MenuItem {
	out := make(map[string][]models.MenuItem)
	for t, names := range entries {
		for _, n := range names {
			out[string(t)] = append(out[string(t)], models.MenuItem{Name: n})
		}
	}
	return out
}

func TestSelectDrink(t *testing.T) {
	full := pools(map[models.BeverageType][]string{
		models.BeverageMargaritas: {"Nadarita", "Mezcal Margarita"},
		models.BeverageCocktails:  {"Paloma"},
		models.BeverageSangria:    {"Sangria Roja"},
		models.BeverageWine:       {"House Red"},
		models.BeverageBeer:       {"Modelo", "Pacifico"},
		models.BeverageNA:         {"Horchata", "Jamaica"},
	})
	empty := map[string][]models.MenuItem{}

	tests := []struct {
		name      string
		alcohol   models.Alcohol
		variant   int
		beverages map[string][]models.MenuItem
		want      string
	}{
		{"none rotates catalog pool", models.AlcoholNone, 1, full, "Jamaica"},
		{"none wraps", models.AlcoholNone, 2, full, "Horchata"},
		{"none falls back", models.AlcoholNone, 1, empty, "Pink Grapefruit Soda"},
		{"beer", models.AlcoholBeer, 3, full, "Pacifico"},
		{"beer fallback", models.AlcoholBeer, 5, empty, "Corona"},
		{"cocktail", models.AlcoholCocktail, 4, full, "Paloma"},
		{"cocktail fallback", models.AlcoholCocktail, 0, empty, "Bonfire"},
		{"wine reads sangria first", models.AlcoholWine, 0, full, "Sangria Roja"},
		{"wine then wine pool", models.AlcoholWine, 1, full, "House Red"},
		{"wine fallback", models.AlcoholWine, 0, empty, "Sangria Blanco"},
		{"any starts with margaritas", models.AlcoholAny, 0, full, "Nadarita"},
		{"any continues into wine", models.AlcoholAny, 3, full, "House Red"},
		{"any reaches beer", models.AlcoholAny, 5, full, "Pacifico"},
		{"any wraps", models.AlcoholAny, 6, full, "Nadarita"},
		{"any fallback", models.AlcoholAny, 2, empty, "Sangria Blanco"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectDrink(tt.alcohol, tt.variant, tt.beverages))
		})
	}
}

func TestSelectDrinkDeterministic(t *testing.T) {
	beverages := dinnerMenu().Beverages
	for v := 0; v < 10; v++ {
		assert.Equal(t, SelectDrink(models.AlcoholBeer, v, beverages), SelectDrink(models.AlcoholBeer, v, beverages))
	}
}

func TestCuratedDrinks(t *testing.T) {
	for _, name := range []string{"Corona", "Bonfire", "Sangria Blanco", "Topo Chico", "Nadarita", "Mezcal Margarita"} {
		assert.True(t, IsCuratedDrink(name), name)
	}
	assert.False(t, IsCuratedDrink("Whiskey Sour"))
}

func TestDrinkItemPrice(t *testing.T) {
	// Modelo is listed at $7 but drinks always carry the default price
	priced := drinkItem("Modelo")
	if assert.NotNil(t, priced.Price) {
		assert.Equal(t, DefaultPrice(models.CategoryDrink), *priced.Price)
	}
	assert.Equal(t, string(models.CategoryDrink), priced.Category)

	curated := drinkItem("Bonfire")
	if assert.NotNil(t, curated.Price) {
		assert.Equal(t, 12.0, *curated.Price)
	}
	assert.Empty(t, curated.Tags)
}

func TestEngineTotalsUseDrinkDefault(t *testing.T) {
	scoped := &models.ScopedMenu{
		Categories: map[string][]models.MenuItem{
			"enchiladas": {item("Spinach Enchiladas", 1, 16, "vegetarian")},
			"sides":      {item("Street Corn", 2, 6, "vegetarian")},
		},
		Beverages: map[string][]models.MenuItem{
			"beer": {{Name: "Corona", Price: pricep(6)}},
		},
	}
	prefs := dinnerPrefs()
	prefs.PartySize = 1

	recs, err := NewEngine(DefaultTuning()).Recommend(context.Background(), scoped, prefs)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Corona", recs[0].Items[len(recs[0].Items)-1].Name)
	// 16 + 6 + 12
	assert.Equal(t, "$34", recs[0].EstimateTotal)
}
