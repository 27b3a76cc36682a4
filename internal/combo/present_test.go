package combo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comboplanner/internal/models"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$0", FormatPrice(0))
	assert.Equal(t, "$18", FormatPrice(17.5))
	assert.Equal(t, "$17", FormatPrice(17.49))
	assert.Equal(t, models.UnknownEstimate, FormatPrice(math.NaN()))
	assert.Equal(t, models.UnknownEstimate, FormatPrice(-1))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Soup/Salad", Label(models.CategorySoupSalad))
	assert.Equal(t, "Side", Label(models.CategorySides))
	assert.Equal(t, "Entree", Label(models.CategoryEntrees))
	assert.Equal(t, "specials", Label("specials"))

	cat, ok := CategoryForLabel("Dessert")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryDesserts, cat)
}

func TestPresent(t *testing.T) {
	prefs := dinnerPrefs()
	s := newState(0).
		Extend(models.CategoryAntojitos, item("Ceviche", 2, 16, "seafood"), 2).
		Extend(models.CategoryTacos, item("Carnitas", 2, 14), 2).
		Extend(models.CategoryDrink, models.MenuItem{Name: "Corona", Price: pricep(6)}, 2)

	rec := Present(s, tacoTemplates[0], prefs)

	assert.Equal(t, "AI Combo — First-Timer", rec.Title)
	assert.Equal(t, []string{models.TagGenerated, "light"}, rec.Tags)
	require.Len(t, rec.Items, 3)
	assert.Equal(t, models.ComboItem{Category: "Antojitos", Name: "Ceviche"}, rec.Items[0])
	assert.Equal(t, models.ComboItem{Category: "Tacos", Name: "Carnitas", Note: "pair"}, rec.Items[1])
	assert.Equal(t, "Drink", rec.Items[2].Category)
	assert.Equal(t, "$18", rec.EstimatePerPerson)
	assert.Equal(t, "$36", rec.EstimateTotal)
	assert.Contains(t, rec.Rationale, "light meal")
}
