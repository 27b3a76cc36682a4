package combo

import (
	"context"
	"fmt"

	"comboplanner/internal/models"
)

// RuleBased is the last-resort strategy: one preferred-tag pick per category
// from a fixed template, without search or scoring.
type RuleBased struct{}

// NewRuleBased creates the rule-based strategy
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// Name identifies the strategy
func (r *RuleBased) Name() string { return "rules" }

type ruleCombo struct {
	name      string
	tag       string
	rationale string
	slots     []models.MenuCategory
	drink     bool
	minItems  int
	when      func(scoped *models.ScopedMenu, prefs models.Preferences) bool
}

func always(*models.ScopedMenu, models.Preferences) bool { return true }

var brunchRules = []ruleCombo{
	{
		name: "Brunch Favorite", tag: "balanced", rationale: "Balanced for a %s appetite.",
		slots: []models.MenuCategory{models.CategoryEntrees, models.CategorySides}, drink: true, minItems: 2, when: always,
	},
	{
		name: "Light & Fresh Brunch", tag: "fresh", rationale: "Leaning fresh for a %s appetite.",
		slots: []models.MenuCategory{models.CategoryEntrees, models.CategoryDesserts}, minItems: 2, when: always,
	},
}

var tacoRules = []ruleCombo{
	{
		name: "First-Timer", tag: "balanced", rationale: "Optimized variety for a %s meal.",
		slots: []models.MenuCategory{models.CategoryAntojitos, models.CategoryTacos, models.CategorySides}, drink: true, minItems: 2, when: always,
	},
	{
		name: "Light & Fresh", tag: "fresh", rationale: "A lighter set for a %s meal, leaning fresh.",
		slots: []models.MenuCategory{models.CategorySoupSalad, models.CategoryTacos, models.CategorySides}, minItems: 2, when: always,
	},
	{
		name: "Share & Sizzle", tag: "shareable", rationale: "Shareable and sizzling for a %s appetite.",
		slots: []models.MenuCategory{models.CategoryAntojitos, models.CategoryFajitas}, minItems: 2,
		when: func(scoped *models.ScopedMenu, prefs models.Preferences) bool {
			return prefs.PartySize >= 2 && prefs.Portion == models.PortionFilling &&
				(scoped.Has(models.CategoryFajitas) || scoped.Has(models.CategoryAntojitos))
		},
	},
	{
		name: "Sweet Finish", tag: "dessert", rationale: "A sweet ending for a %s meal.",
		slots: []models.MenuCategory{models.CategoryDesserts}, minItems: 1,
		when: func(scoped *models.ScopedMenu, prefs models.Preferences) bool {
			return prefs.Portion == models.PortionFilling && scoped.Has(models.CategoryDesserts)
		},
	},
}

// Recommend builds the rule-based combos. Picks rotate by variant so results
// stay deterministic.
func (r *RuleBased) Recommend(_ context.Context, scoped *models.ScopedMenu, prefs models.Preferences) ([]models.Recommendation, error) {
	rules := tacoRules
	if scoped.Has(models.CategoryEntrees) {
		rules = brunchRules
	}

	var recs []models.Recommendation
	for _, rule := range rules {
		if !rule.when(scoped, prefs) {
			continue
		}
		if rec, ok := r.build(rule, scoped, prefs); ok {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (r *RuleBased) build(rule ruleCombo, scoped *models.ScopedMenu, prefs models.Preferences) (models.Recommendation, bool) {
	var (
		items  []models.ComboItem
		total  float64
		priced = true
	)
	for slot, cat := range rule.slots {
		item, ok := pickPreferred(scoped.Items(cat), prefs, prefs.Variant+slot)
		if !ok {
			continue
		}
		items = append(items, comboItem(cat, item.Name))
		if item.Price != nil {
			total += *item.Price
		} else {
			priced = false
		}
	}
	if rule.drink {
		drink := drinkItem(SelectDrink(prefs.Alcohol, prefs.Variant, scoped.Beverages))
		items = append(items, comboItem(models.CategoryDrink, drink.Name))
		if drink.Price != nil {
			total += *drink.Price
		} else {
			priced = false
		}
	}
	if len(items) < rule.minItems {
		return models.Recommendation{}, false
	}

	rec := models.Recommendation{
		Title:             title(rule.name),
		Tags:              []string{rule.tag, models.TagRuleBased, string(prefs.Portion)},
		Items:             items,
		EstimatePerPerson: models.UnknownEstimate,
		EstimateTotal:     models.UnknownEstimate,
		Rationale:         fmt.Sprintf(rule.rationale, prefs.Portion),
	}
	if priced && prefs.PartySize > 0 {
		rec.EstimatePerPerson = FormatPrice(total / float64(prefs.PartySize))
		rec.EstimateTotal = FormatPrice(total)
	}
	return rec, true
}

// pickPreferred returns the first item carrying a tag suited to the appetite,
// or the first item when none does, after rotating by offset.
func pickPreferred(items []models.MenuItem, prefs models.Preferences, offset int) (models.MenuItem, bool) {
	rotated := rotate(items, offset)
	if len(rotated) == 0 {
		return models.MenuItem{}, false
	}
	preferred := []string{"fresh", "seafood"}
	if prefs.Portion == models.PortionFilling {
		preferred = []string{"shareable", "creamy", "cheese"}
	}
	for _, it := range rotated {
		for _, tag := range preferred {
			if it.HasTag(tag) {
				return it, true
			}
		}
	}
	return rotated[0], true
}
