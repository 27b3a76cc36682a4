// Package combo generates ranked meal combos from a scoped menu with a scored
// beam search over category templates.
package combo

import (
	"errors"
	"fmt"
)

// Weights are the scoring coefficients.
type Weights struct {
	Variety     float64
	Spice       float64
	Portion     float64
	Budget      float64
	PickPenalty float64
}

// Tuning holds the search and scoring constants.
type Tuning struct {
	BeamWidth     int
	CandidatePool int
	ResultCount   int

	Weights    Weights
	VarietyCap int

	NeutralSpice float64

	IdealRatioLight   float64
	IdealRatioFilling float64
	IdealRatioDefault float64

	BudgetNeutral        float64
	BudgetToleranceFloor float64
	BudgetToleranceRatio float64

	// PartialPortionBound caps running portions at this multiple of party size.
	PartialPortionBound float64
	FinalPortionMin     float64
	FinalPortionMax     float64

	// StrictDiversity returns fewer than ResultCount combos instead of
	// backfilling overlapping ones.
	StrictDiversity bool
}

// DefaultTuning returns the production constants.
func DefaultTuning() Tuning {
	return Tuning{
		BeamWidth:     20,
		CandidatePool: 30,
		ResultCount:   3,
		Weights: Weights{
			Variety:     2.0,
			Spice:       1.5,
			Portion:     2.0,
			Budget:      2.0,
			PickPenalty: 0.1,
		},
		VarietyCap:           6,
		NeutralSpice:         2,
		IdealRatioLight:      0.8,
		IdealRatioFilling:    1.3,
		IdealRatioDefault:    1.0,
		BudgetNeutral:        0.8,
		BudgetToleranceFloor: 10,
		BudgetToleranceRatio: 0.2,
		PartialPortionBound:  1.8,
		FinalPortionMin:      0.6,
		FinalPortionMax:      1.8,
	}
}

// Validate checks the tuning for values the search cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	if t.BeamWidth < 1 {
		errs = append(errs, fmt.Errorf("beam width must be positive, got %d", t.BeamWidth))
	}
	if t.CandidatePool < 1 {
		errs = append(errs, fmt.Errorf("candidate pool must be positive, got %d", t.CandidatePool))
	}
	if t.ResultCount < 1 {
		errs = append(errs, fmt.Errorf("result count must be positive, got %d", t.ResultCount))
	}
	if t.VarietyCap < 1 {
		errs = append(errs, fmt.Errorf("variety cap must be positive, got %d", t.VarietyCap))
	}
	if t.FinalPortionMin > t.FinalPortionMax {
		errs = append(errs, fmt.Errorf("final portion band is inverted: %.2f > %.2f", t.FinalPortionMin, t.FinalPortionMax))
	}
	if t.BudgetToleranceFloor <= 0 {
		errs = append(errs, errors.New("budget tolerance floor must be positive"))
	}
	return errors.Join(errs...)
}

// withDefaults replaces every value Validate would reject with its default.
func (t Tuning) withDefaults() Tuning {
	def := DefaultTuning()
	if t.BeamWidth < 1 {
		t.BeamWidth = def.BeamWidth
	}
	if t.CandidatePool < 1 {
		t.CandidatePool = def.CandidatePool
	}
	if t.ResultCount < 1 {
		t.ResultCount = def.ResultCount
	}
	if t.VarietyCap < 1 {
		t.VarietyCap = def.VarietyCap
	}
	if t.FinalPortionMin > t.FinalPortionMax {
		t.FinalPortionMin, t.FinalPortionMax = def.FinalPortionMin, def.FinalPortionMax
	}
	if t.BudgetToleranceFloor <= 0 {
		t.BudgetToleranceFloor = def.BudgetToleranceFloor
	}
	return t
}
