// Package planner dispatches combo requests across recommendation strategies.
package planner

import (
	"context"

	"comboplanner/internal/models"
)

// Strategy produces recommendations for a scoped menu.
type Strategy interface {
	Name() string
	Recommend(ctx context.Context, scoped *models.ScopedMenu, prefs models.Preferences) ([]models.Recommendation, error)
}

// reasoner is implemented by errors that carry a failure classification.
type reasoner interface {
	FailureReason() string
}
