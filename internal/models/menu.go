package models

import (
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// MenuItem represents a dish or beverage on the menu
type MenuItem struct {
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
	Spice       *int     `json:"spice,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Ingredients string   `json:"ingredients,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// UnmarshalJSON accepts either a full item object or a bare name string.
func (mi *MenuItem) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*mi = MenuItem{Name: name}
		return nil
	}
	type plain MenuItem
	var item plain
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*mi = MenuItem(item)
	return nil
}

// HasTag checks if the item carries a specific tag
func (mi *MenuItem) HasTag(tag string) bool {
	for _, t := range mi.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAllergen checks if the item lists the allergen, either exactly or as a prefix
// (so "gluten" matches "gluten-trace").
func (mi *MenuItem) HasAllergen(allergen string) bool {
	for _, alg := range mi.Allergens {
		if alg == allergen || strings.HasPrefix(alg, allergen) {
			return true
		}
	}
	return false
}

// MenuCategory represents the category of a menu item
type MenuCategory string

const (
	CategoryAntojitos   MenuCategory = "antojitos"
	CategoryTacos       MenuCategory = "tacos"
	CategorySoupSalad   MenuCategory = "soup_salad"
	CategorySides       MenuCategory = "sides"
	CategoryFajitas     MenuCategory = "fajitas"
	CategoryQuesadillas MenuCategory = "quesadillas"
	CategoryEnchiladas  MenuCategory = "enchiladas"
	CategoryDesserts    MenuCategory = "desserts"
	CategoryEntrees     MenuCategory = "entrees"
	// CategoryDrink is the synthetic category a selected beverage occupies in a combo.
	CategoryDrink MenuCategory = "drink"
)

// KnownCategories lists the dish categories every scoped menu carries.
var KnownCategories = []MenuCategory{
	CategoryAntojitos,
	CategoryTacos,
	CategorySoupSalad,
	CategorySides,
	CategoryFajitas,
	CategoryQuesadillas,
	CategoryEnchiladas,
	CategoryDesserts,
	CategoryEntrees,
}

// BeverageType represents a beverage pool in the catalog
type BeverageType string

const (
	BeverageMargaritas BeverageType = "margaritas"
	BeverageCocktails  BeverageType = "cocktails"
	BeverageSangria    BeverageType = "sangria"
	BeverageWine       BeverageType = "wine"
	BeverageBeer       BeverageType = "beer"
	BeverageNA         BeverageType = "na"
)

// KnownBeverages lists the beverage pools every scoped menu carries.
var KnownBeverages = []BeverageType{
	BeverageMargaritas,
	BeverageCocktails,
	BeverageSangria,
	BeverageWine,
	BeverageBeer,
	BeverageNA,
}

// Allergen represents a food allergen
type Allergen string

const (
	AllergenGluten Allergen = "gluten"
)

// Catalog is the full restaurant menu keyed by meal period and category.
type Catalog struct {
	Meals     map[string]map[string][]MenuItem
	Beverages map[string][]MenuItem
}

type catalogDocument struct {
	Meals map[string]json.RawMessage `json:"meals"`
}

// UnmarshalJSON decodes {"meals": {<period>: {<category>: [...]}, "beverages": {...}}}.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	c.Meals = make(map[string]map[string][]MenuItem)
	c.Beverages = make(map[string][]MenuItem)
	for key, raw := range doc.Meals {
		if key == "beverages" {
			if err := json.Unmarshal(raw, &c.Beverages); err != nil {
				return err
			}
			continue
		}
		var categories map[string][]MenuItem
		if err := json.Unmarshal(raw, &categories); err != nil {
			return err
		}
		c.Meals[key] = categories
	}
	return nil
}

// MarshalJSON encodes the catalog in the same shape UnmarshalJSON reads.
func (c Catalog) MarshalJSON() ([]byte, error) {
	meals := make(map[string]interface{}, len(c.Meals)+1)
	for period, categories := range c.Meals {
		meals[period] = categories
	}
	if len(c.Beverages) > 0 {
		meals["beverages"] = c.Beverages
	}
	return json.Marshal(map[string]interface{}{"meals": meals})
}

// Periods returns the meal periods present in the catalog, sorted.
func (c *Catalog) Periods() []string {
	periods := make([]string, 0, len(c.Meals))
	for p := range c.Meals {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	return periods
}

// ScopedMenu is the per-request view of the catalog for one meal period.
type ScopedMenu struct {
	Categories map[string][]MenuItem `json:"categories"`
	Beverages  map[string][]MenuItem `json:"beverages"`
}

// Items returns the items in a category
func (s *ScopedMenu) Items(category MenuCategory) []MenuItem {
	return s.Categories[string(category)]
}

// Has reports whether a category has at least one item
func (s *ScopedMenu) Has(category MenuCategory) bool {
	return len(s.Categories[string(category)]) > 0
}

// Pool returns the items of a beverage pool
func (s *ScopedMenu) Pool(beverage BeverageType) []MenuItem {
	return s.Beverages[string(beverage)]
}

// Lookup finds an item by name in any category or beverage pool.
func (s *ScopedMenu) Lookup(name string) (MenuItem, bool) {
	for _, items := range s.Categories {
		for _, it := range items {
			if it.Name == name {
				return it, true
			}
		}
	}
	return s.LookupBeverage(name)
}

// LookupBeverage finds an item by name in the beverage pools.
func (s *ScopedMenu) LookupBeverage(name string) (MenuItem, bool) {
	for _, items := range s.Beverages {
		for _, it := range items {
			if it.Name == name {
				return it, true
			}
		}
	}
	return MenuItem{}, false
}

// CategoryNames returns the non-empty category names, sorted.
func (s *ScopedMenu) CategoryNames() []string {
	names := make([]string, 0, len(s.Categories))
	for name, items := range s.Categories {
		if len(items) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
