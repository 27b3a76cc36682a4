package planner

import (
	"context"
	"fmt"
	"time"

	"comboplanner/internal/menu"
	"comboplanner/internal/models"
	"comboplanner/internal/monitoring"
)

// Service answers combo requests: load catalog, scope, filter, then run the chain.
type Service struct {
	provider menu.Provider
	chain    *Chain
	monitor  *monitoring.Monitor
}

// NewService wires a catalog provider to a strategy chain. monitor may be nil.
func NewService(provider menu.Provider, chain *Chain, monitor *monitoring.Monitor) *Service {
	return &Service{provider: provider, chain: chain, monitor: monitor}
}

// Chain returns the service's strategy chain
func (s *Service) Chain() *Chain {
	return s.chain
}

// Catalog returns the full catalog from the provider
func (s *Service) Catalog(ctx context.Context) (*models.Catalog, error) {
	catalog, err := s.provider.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("planner: load catalog: %w", err)
	}
	return catalog, nil
}

// ScopedMenu returns the scoped and diet-filtered menu for the preferences.
func (s *Service) ScopedMenu(ctx context.Context, prefs models.Preferences) (*models.ScopedMenu, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return menu.Prepare(catalog, prefs), nil
}

// Recommend produces the combo response for sanitized preferences.
func (s *Service) Recommend(ctx context.Context, prefs models.Preferences) (*models.Response, error) {
	start := time.Now()
	scoped, err := s.ScopedMenu(ctx, prefs)
	if err != nil {
		return nil, err
	}

	result, err := s.chain.Run(ctx, scoped, prefs)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}

	if s.monitor != nil {
		strategy := result.Strategy
		if strategy == "" {
			strategy = "none"
		}
		s.monitor.RecordRecommendation(strategy, len(result.Recommendations), time.Since(start))
	}

	return &models.Response{
		Recommendations: result.Recommendations,
		Strategy:        result.Strategy,
	}, nil
}
