package combo

import (
	"math"

	"comboplanner/internal/models"
)

// Scorer computes combo desirability for one request.
type Scorer struct {
	tuning Tuning
	prefs  models.Preferences
}

// NewScorer binds the tuning constants to a request's preferences.
func NewScorer(tuning Tuning, prefs models.Preferences) Scorer {
	return Scorer{tuning: tuning, prefs: prefs}
}

// Score returns
//
//	w_variety*variety + w_spice*spiceFit + w_portion*portionFit +
//	w_budget*budgetFit + contextBoost - penalty*picks
func (sc Scorer) Score(s State) float64 {
	w := sc.tuning.Weights
	return w.Variety*sc.Variety(s) +
		w.Spice*sc.SpiceFit(s) +
		w.Portion*sc.PortionFit(s) +
		w.Budget*sc.BudgetFit(s) +
		sc.ContextBoost(s) -
		w.PickPenalty*float64(s.Len())
}

// Variety saturates at the configured cap of distinct tags.
func (sc Scorer) Variety(s State) float64 {
	capped := math.Min(float64(s.DistinctTags()), float64(sc.tuning.VarietyCap))
	return capped / float64(sc.tuning.VarietyCap)
}

// SpiceFit is 1 when the average spice matches the target and 0 two levels away.
func (sc Scorer) SpiceFit(s State) float64 {
	diff := math.Abs(s.SpiceAverage(sc.tuning.NeutralSpice) - sc.prefs.Spice.Level())
	return math.Max(0, 1-diff/2)
}

// PortionFit compares portions per person to the ideal ratio for the appetite.
func (sc Scorer) PortionFit(s State) float64 {
	diff := math.Abs(s.PortionsPerPerson(sc.prefs.PartySize) - sc.idealRatio())
	return math.Max(0, 1-diff)
}

func (sc Scorer) idealRatio() float64 {
	switch sc.prefs.Portion {
	case models.PortionLight:
		return sc.tuning.IdealRatioLight
	case models.PortionFilling:
		return sc.tuning.IdealRatioFilling
	default:
		return sc.tuning.IdealRatioDefault
	}
}

// BudgetFit is neutral without a budget, otherwise it decays linearly with the
// distance from budget x party size.
func (sc Scorer) BudgetFit(s State) float64 {
	target, tolerance, ok := sc.budgetTarget()
	if !ok {
		return sc.tuning.BudgetNeutral
	}
	return math.Max(0, 1-math.Abs(s.Price()-target)/tolerance)
}

func (sc Scorer) budgetTarget() (target, tolerance float64, ok bool) {
	if sc.prefs.Budget == nil {
		return 0, 0, false
	}
	target = *sc.prefs.Budget * float64(max(sc.prefs.PartySize, 1))
	tolerance = math.Max(sc.tuning.BudgetToleranceFloor, sc.tuning.BudgetToleranceRatio*target)
	return target, tolerance, true
}

// ContextBoost rewards tags that suit the appetite.
func (sc Scorer) ContextBoost(s State) float64 {
	var boost float64
	switch sc.prefs.Portion {
	case models.PortionLight:
		if s.HasTag("fresh") {
			boost += 0.3
		}
		if s.HasTag("seafood") {
			boost += 0.2
		}
		if s.HasTag("creamy") {
			boost -= 0.15
		}
	case models.PortionFilling:
		if s.HasTag("shareable") {
			boost += 0.3
		}
		if s.HasTag("cheese") {
			boost += 0.2
		}
	}
	return boost
}

// PartialFeasible rejects states whose running portions already exceed the
// loose bound for the party.
func (sc Scorer) PartialFeasible(s State) bool {
	return s.Portions() <= float64(max(sc.prefs.PartySize, 1))*sc.tuning.PartialPortionBound
}

// FinalFeasible checks the tight portion band and, when a budget is set, the
// price tolerance.
func (sc Scorer) FinalFeasible(s State) bool {
	per := s.PortionsPerPerson(sc.prefs.PartySize)
	if per < sc.tuning.FinalPortionMin || per > sc.tuning.FinalPortionMax {
		return false
	}
	if target, tolerance, ok := sc.budgetTarget(); ok {
		if math.Abs(s.Price()-target) > tolerance {
			return false
		}
	}
	return true
}
