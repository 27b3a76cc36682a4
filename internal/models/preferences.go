package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Meal is the meal period a request is scoped to
type Meal string

const (
	MealLunch  Meal = "lunch"
	MealDinner Meal = "dinner"
	MealBrunch Meal = "brunch"
)

// Spice is the guest's spice tolerance
type Spice string

const (
	SpiceMild   Spice = "mild"
	SpiceMedium Spice = "medium"
	SpiceHot    Spice = "hot"
)

// Level maps the tolerance onto the 1-3 item spice scale.
func (s Spice) Level() float64 {
	switch s {
	case SpiceMild:
		return 1
	case SpiceHot:
		return 3
	default:
		return 2
	}
}

// Alcohol is the guest's drink preference
type Alcohol string

const (
	AlcoholAny      Alcohol = "any"
	AlcoholNone     Alcohol = "none"
	AlcoholBeer     Alcohol = "beer"
	AlcoholCocktail Alcohol = "cocktail"
	AlcoholWine     Alcohol = "wine"
)

// Portion is the appetite context used by scoring
type Portion string

const (
	PortionLight   Portion = "light"
	PortionFilling Portion = "filling"
)

// Diet flags understood by the dietary filter
const (
	DietVegetarian = "vegetarian"
	DietGluten     = "gluten"
)

// Ingestion bounds
const (
	MinPartySize = 1
	MaxPartySize = 10
	MaxDietFlags = 5
	MaxVariant   = 99
	DefaultParty = 1
)

// Preferences is a sanitized combo request
type Preferences struct {
	Meal      Meal     `json:"meal"`
	PartySize int      `json:"partySize"`
	Diet      []string `json:"diet"`
	Spice     Spice    `json:"spice"`
	Alcohol   Alcohol  `json:"alcohol"`
	Portion   Portion  `json:"portionPref"`
	Budget    *float64 `json:"budget,omitempty"`
	Variant   int      `json:"_variant"`
}

// HasDiet checks if a diet flag was requested
func (p Preferences) HasDiet(flag string) bool {
	for _, d := range p.Diet {
		if d == flag {
			return true
		}
	}
	return false
}

// WithVariant returns a copy with the variant counter replaced, clamped to range.
func (p Preferences) WithVariant(variant int) Preferences {
	p.Variant = clampInt(variant, 0, MaxVariant)
	return p
}

// PreferencesRequest is the raw, untrusted request body.
// Numeric fields accept numbers or numeric strings.
type PreferencesRequest struct {
	Meal        string      `json:"meal"`
	PartySize   interface{} `json:"partySize"`
	Diet        interface{} `json:"diet"`
	Spice       string      `json:"spice"`
	Alcohol     string      `json:"alcohol"`
	PortionPref string      `json:"portionPref"`
	Budget      interface{} `json:"budget"`
	Variant     interface{} `json:"_variant"`
	VariantAlt  interface{} `json:"variant"`
}

// Sanitize clamps and defaults every field so the engine never sees invalid state.
func (r PreferencesRequest) Sanitize() Preferences {
	prefs := Preferences{
		Meal:      MealDinner,
		PartySize: DefaultParty,
		Diet:      []string{},
		Spice:     SpiceMedium,
		Alcohol:   AlcoholAny,
		Portion:   PortionLight,
	}

	switch m := Meal(normalize(r.Meal)); m {
	case MealLunch, MealDinner, MealBrunch:
		prefs.Meal = m
	}

	if n, ok := toNumber(r.PartySize); ok && n != 0 {
		prefs.PartySize = clampInt(int(math.Trunc(n)), MinPartySize, MaxPartySize)
	}

	prefs.Diet = dietFlags(r.Diet)

	switch s := Spice(normalize(r.Spice)); s {
	case SpiceMild, SpiceMedium, SpiceHot:
		prefs.Spice = s
	}

	switch a := normalize(r.Alcohol); a {
	case "na", string(AlcoholNone):
		prefs.Alcohol = AlcoholNone
	case string(AlcoholAny), string(AlcoholBeer), string(AlcoholCocktail), string(AlcoholWine):
		prefs.Alcohol = Alcohol(a)
	}

	switch p := Portion(normalize(r.PortionPref)); p {
	case PortionLight, PortionFilling:
		prefs.Portion = p
	}

	if b, ok := toNumber(r.Budget); ok && b > 0 {
		prefs.Budget = &b
	}

	variant := r.Variant
	if variant == nil {
		variant = r.VariantAlt
	}
	if v, ok := toNumber(variant); ok {
		prefs.Variant = clampInt(int(math.Trunc(v)), 0, MaxVariant)
	}

	return prefs
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func dietFlags(raw interface{}) []string {
	list, ok := raw.([]interface{})
	if !ok {
		if strs, isStrs := raw.([]string); isStrs {
			for _, s := range strs {
				list = append(list, s)
			}
		}
	}
	flags := []string{}
	for _, v := range list {
		if len(flags) == MaxDietFlags {
			break
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		flags = append(flags, normalize(s))
	}
	return flags
}

func toNumber(v interface{}) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
