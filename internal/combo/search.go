package combo

import (
	"slices"

	"comboplanner/internal/models"
)

// Search runs the beam search over every template and returns the final
// feasible states, template by template.
func Search(tuning Tuning, scoped *models.ScopedMenu, templates []Template, prefs models.Preferences) []State {
	scorer := NewScorer(tuning, prefs)
	drink := drinkItem(SelectDrink(prefs.Alcohol, prefs.Variant, scoped.Beverages))

	var candidates []State
	for tIdx, tpl := range templates {
		beam := []State{newState(tIdx)}
		for step, cat := range tpl.Steps {
			var opts []models.MenuItem
			if cat == models.CategoryDrink {
				opts = []models.MenuItem{drink}
			} else {
				opts = rotate(scoped.Items(cat), prefs.Variant+step+tIdx)
			}

			var next []State
			if len(opts) > 0 {
				next = make([]State, 0, len(beam)*len(opts))
				for _, s := range beam {
					for _, item := range opts {
						s2 := s.Extend(cat, item, tuning.NeutralSpice)
						s2 = s2.withScore(scorer.Score(s2))
						if scorer.PartialFeasible(s2) {
							next = append(next, s2)
						}
					}
				}
			}
			if len(next) > 0 {
				beam = topK(next, tuning.BeamWidth)
			} else {
				beam = topK(beam, tuning.BeamWidth)
			}
		}

		for _, s := range beam {
			if scorer.FinalFeasible(s) {
				candidates = append(candidates, s)
			}
		}
	}
	return candidates
}

// topK returns the k best states by score. Ties keep their input order.
func topK(states []State, k int) []State {
	if k < 1 {
		return []State{}
	}
	sorted := slices.Clone(states)
	slices.SortStableFunc(sorted, func(a, b State) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

// rotate returns a copy of items starting at offset k.
func rotate(items []models.MenuItem, k int) []models.MenuItem {
	if len(items) == 0 {
		return nil
	}
	off := mod(k, len(items))
	out := make([]models.MenuItem, 0, len(items))
	out = append(out, items[off:]...)
	return append(out, items[:off]...)
}
