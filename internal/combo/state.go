package combo

import "comboplanner/internal/models"

// Pick is one chosen item in a combo.
type Pick struct {
	Category models.MenuCategory
	Name     string
}

// State is a partial or complete combo. States are never modified after
// creation; Extend returns a new one.
type State struct {
	template   int
	picks      []Pick
	price      float64
	portions   float64
	tags       []string
	spiceSum   float64
	spiceCount int
	score      float64
}

func newState(template int) State {
	return State{template: template}
}

// Extend returns a new state with item added under category.
func (s State) Extend(cat models.MenuCategory, item models.MenuItem, neutralSpice float64) State {
	price := DefaultPrice(cat)
	if item.Price != nil {
		price = *item.Price
	}
	spice := neutralSpice
	if item.Spice != nil {
		spice = float64(*item.Spice)
	}

	picks := make([]Pick, len(s.picks), len(s.picks)+1)
	copy(picks, s.picks)
	tags := make([]string, len(s.tags), len(s.tags)+len(item.Tags))
	copy(tags, s.tags)

	return State{
		template:   s.template,
		picks:      append(picks, Pick{Category: cat, Name: item.Name}),
		price:      s.price + price,
		portions:   s.portions + PortionUnits(cat),
		tags:       append(tags, item.Tags...),
		spiceSum:   s.spiceSum + spice,
		spiceCount: s.spiceCount + 1,
		score:      s.score,
	}
}

func (s State) withScore(score float64) State {
	s.score = score
	return s
}

// Template returns the index of the template the state was built from.
func (s State) Template() int { return s.template }

// Picks returns a copy of the chosen items in order.
func (s State) Picks() []Pick {
	out := make([]Pick, len(s.picks))
	copy(out, s.picks)
	return out
}

// Len returns the number of picks.
func (s State) Len() int { return len(s.picks) }

// Price returns the running total price.
func (s State) Price() float64 { return s.price }

// Portions returns the running total of serving units.
func (s State) Portions() float64 { return s.portions }

// Score returns the last computed score.
func (s State) Score() float64 { return s.score }

// PortionsPerPerson divides the portion total across the party.
func (s State) PortionsPerPerson(party int) float64 {
	if party < 1 {
		party = 1
	}
	return s.portions / float64(party)
}

// SpiceAverage returns the mean spice of all picks, or neutral for an empty state.
func (s State) SpiceAverage(neutral float64) float64 {
	if s.spiceCount == 0 {
		return neutral
	}
	return s.spiceSum / float64(s.spiceCount)
}

// DistinctTags counts the distinct tags accumulated across picks.
func (s State) DistinctTags() int {
	seen := make(map[string]struct{}, len(s.tags))
	for _, t := range s.tags {
		seen[t] = struct{}{}
	}
	return len(seen)
}

// HasTag reports whether any pick carried tag.
func (s State) HasTag(tag string) bool {
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}
