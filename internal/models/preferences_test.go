package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeDefaults(t *testing.T) {
	prefs := PreferencesRequest{}.Sanitize()

	assert.Equal(t, MealDinner, prefs.Meal)
	assert.Equal(t, 1, prefs.PartySize)
	assert.Empty(t, prefs.Diet)
	assert.NotNil(t, prefs.Diet)
	assert.Equal(t, SpiceMedium, prefs.Spice)
	assert.Equal(t, AlcoholAny, prefs.Alcohol)
	assert.Equal(t, PortionLight, prefs.Portion)
	assert.Nil(t, prefs.Budget)
	assert.Equal(t, 0, prefs.Variant)
}

func TestSanitizeClamps(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		party   int
		variant int
	}{
		{"large party", `{"partySize": 40}`, 10, 0},
		{"negative party", `{"partySize": -3}`, 1, 0},
		{"string party", `{"partySize": "4"}`, 4, 0},
		{"garbage party", `{"partySize": "many"}`, 1, 0},
		{"fractional party", `{"partySize": 2.7}`, 2, 0},
		{"variant high", `{"_variant": 500}`, 1, 99},
		{"variant negative", `{"_variant": -1}`, 1, 0},
		{"variant alias", `{"variant": 7}`, 1, 7},
		{"variant string", `{"_variant": "3"}`, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req PreferencesRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			prefs := req.Sanitize()
			assert.Equal(t, tt.party, prefs.PartySize)
			assert.Equal(t, tt.variant, prefs.Variant)
		})
	}
}

func TestSanitizeEnums(t *testing.T) {
	body := `{"meal":"Brunch","spice":"hot","alcohol":"na","portionPref":"filling","diet":["vegetarian","gluten","a","b","c","d"],"budget":25}`
	var req PreferencesRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	prefs := req.Sanitize()

	assert.Equal(t, MealBrunch, prefs.Meal)
	assert.Equal(t, SpiceHot, prefs.Spice)
	assert.Equal(t, AlcoholNone, prefs.Alcohol)
	assert.Equal(t, PortionFilling, prefs.Portion)
	assert.Len(t, prefs.Diet, MaxDietFlags)
	assert.True(t, prefs.HasDiet(DietVegetarian))
	assert.True(t, prefs.HasDiet(DietGluten))
	require.NotNil(t, prefs.Budget)
	assert.Equal(t, 25.0, *prefs.Budget)
}

func TestSanitizeRejectsUnknownValues(t *testing.T) {
	prefs := PreferencesRequest{
		Meal:        "breakfast",
		Spice:       "nuclear",
		Alcohol:     "whiskey",
		PortionPref: "huge",
		Budget:      -10.0,
	}.Sanitize()

	assert.Equal(t, MealDinner, prefs.Meal)
	assert.Equal(t, SpiceMedium, prefs.Spice)
	assert.Equal(t, AlcoholAny, prefs.Alcohol)
	assert.Equal(t, PortionLight, prefs.Portion)
	assert.Nil(t, prefs.Budget)
}

func TestSpiceLevel(t *testing.T) {
	assert.Equal(t, 1.0, SpiceMild.Level())
	assert.Equal(t, 2.0, SpiceMedium.Level())
	assert.Equal(t, 3.0, SpiceHot.Level())
	assert.Equal(t, 2.0, Spice("").Level())
}

func TestWithVariant(t *testing.T) {
	prefs := Preferences{Variant: 1}
	assert.Equal(t, 5, prefs.WithVariant(5).Variant)
	assert.Equal(t, MaxVariant, prefs.WithVariant(1000).Variant)
	assert.Equal(t, 1, prefs.Variant)
}
