package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{
  "meals": {
    "dinner": {
      "tacos": [{"name": "Baja Fish", "tags": ["seafood", "fresh"], "spice": 1, "price": 15}],
      "sides": [{"name": "Street Corn", "allergens": ["dairy"]}]
    },
    "lunch": {
      "tacos": []
    },
    "beverages": {
      "beer": ["Corona", {"name": "Modelo", "price": 7}],
      "na": ["Topo Chico"]
    }
  }
}`

func TestCatalogUnmarshal(t *testing.T) {
	var c Catalog
	require.NoError(t, json.Unmarshal([]byte(catalogJSON), &c))

	assert.Equal(t, []string{"dinner", "lunch"}, c.Periods())
	require.Len(t, c.Meals["dinner"]["tacos"], 1)
	taco := c.Meals["dinner"]["tacos"][0]
	assert.Equal(t, "Baja Fish", taco.Name)
	require.NotNil(t, taco.Price)
	assert.Equal(t, 15.0, *taco.Price)
	require.NotNil(t, taco.Spice)
	assert.Equal(t, 1, *taco.Spice)

	require.Len(t, c.Beverages["beer"], 2)
	assert.Equal(t, "Corona", c.Beverages["beer"][0].Name)
	assert.Nil(t, c.Beverages["beer"][0].Price)
	assert.Equal(t, "Modelo", c.Beverages["beer"][1].Name)
}

func TestCatalogMarshalRoundTripShape(t *testing.T) {
	var c Catalog
	require.NoError(t, json.Unmarshal([]byte(catalogJSON), &c))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var again Catalog
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Len(t, again.Beverages["beer"], 2)
	assert.Len(t, again.Meals["dinner"]["sides"], 1)
	_, hasBeverageMeal := again.Meals["beverages"]
	assert.False(t, hasBeverageMeal)
}

func TestMenuItemTagsAndAllergens(t *testing.T) {
	item := MenuItem{
		Name:      "Queso",
		Tags:      []string{"cheese", "shareable"},
		Allergens: []string{"dairy", "gluten-trace"},
	}

	assert.True(t, item.HasTag("cheese"))
	assert.False(t, item.HasTag("fresh"))
	assert.True(t, item.HasAllergen("gluten"))
	assert.True(t, item.HasAllergen("dairy"))
	assert.False(t, item.HasAllergen("shellfish"))
}

func TestScopedMenuLookup(t *testing.T) {
	scoped := &ScopedMenu{
		Categories: map[string][]MenuItem{
			"tacos":     {{Name: "Carnitas"}},
			"antojitos": {},
		},
		Beverages: map[string][]MenuItem{
			"beer": {{Name: "Corona"}},
		},
	}

	_, ok := scoped.Lookup("Carnitas")
	assert.True(t, ok)
	_, ok = scoped.Lookup("Corona")
	assert.True(t, ok)
	_, ok = scoped.Lookup("Burger")
	assert.False(t, ok)

	assert.True(t, scoped.Has(CategoryTacos))
	assert.False(t, scoped.Has(CategoryAntojitos))
	assert.Equal(t, []string{"tacos"}, scoped.CategoryNames())
}
