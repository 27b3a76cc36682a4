package combo

import (
	"sort"
	"strings"

	"comboplanner/internal/models"
)

// trackedCategories are the categories whose item names must not repeat
// across selected combos.
var trackedCategories = map[models.MenuCategory]bool{
	models.CategoryTacos:       true,
	models.CategoryAntojitos:   true,
	models.CategoryDrink:       true,
	models.CategoryEntrees:     true,
	models.CategorySoupSalad:   true,
	models.CategoryQuesadillas: true,
	models.CategoryEnchiladas:  true,
}

// Diversify greedily selects up to n states from candidates (best first) so
// that no tracked item repeats. Unless strict is set, a shortfall is backfilled
// with the best remaining states regardless of overlap. A state whose picks
// match an already selected one exactly is never selected.
func Diversify(candidates []State, n int, strict bool) []State {
	if n < 1 {
		return []State{}
	}
	picked := make([]State, 0, n)
	accepted := make([]bool, len(candidates))
	keys := make(map[string]bool)
	seen := make(map[models.MenuCategory]map[string]bool)

	for i, c := range candidates {
		if len(picked) >= n {
			break
		}
		key := pickKey(c)
		if keys[key] || (len(picked) > 0 && overlaps(c, seen)) {
			continue
		}
		picked = append(picked, c)
		accepted[i] = true
		keys[key] = true
		for _, p := range c.picks {
			if !trackedCategories[p.Category] {
				continue
			}
			if seen[p.Category] == nil {
				seen[p.Category] = make(map[string]bool)
			}
			seen[p.Category][p.Name] = true
		}
	}

	if strict {
		return picked
	}
	for i, c := range candidates {
		if len(picked) >= n {
			break
		}
		if accepted[i] {
			continue
		}
		key := pickKey(c)
		if keys[key] {
			continue
		}
		picked = append(picked, c)
		keys[key] = true
	}
	return picked
}

// pickKey identifies a state by its set of picks, ignoring order.
func pickKey(s State) string {
	parts := make([]string, len(s.picks))
	for i, p := range s.picks {
		parts[i] = string(p.Category) + ":" + p.Name
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func overlaps(s State, seen map[models.MenuCategory]map[string]bool) bool {
	for _, p := range s.picks {
		if trackedCategories[p.Category] && seen[p.Category][p.Name] {
			return true
		}
	}
	return false
}
