// Package app assembles the service from configuration. Both the HTTP server
// and the serverless entry build through here.
package app

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"comboplanner/internal/agents"
	"comboplanner/internal/combo"
	"comboplanner/internal/config"
	"comboplanner/internal/database"
	"comboplanner/internal/logging"
	"comboplanner/internal/menu"
	"comboplanner/internal/models"
	"comboplanner/internal/monitoring"
	"comboplanner/internal/planner"
)

// App holds the wired components.
type App struct {
	Config   *config.Config
	Service  *planner.Service
	Registry *models.ModelRegistry
	Metrics  *monitoring.MetricsCollector
	Monitor  *monitoring.Monitor

	// Tuning is the validated engine tuning.
	Tuning combo.Tuning
	// Strategies are the tiers of the chain, in order.
	Strategies []planner.Strategy
	// FileCatalog is the JSON catalog, also the seed source.
	FileCatalog *menu.FileProvider
	// Store is set when the catalog is served from the database.
	Store *database.CatalogStore

	db *gorm.DB
}

// New builds the service. The LLM tier is added only when configured and
// its model initializes; otherwise the chain starts at the generator.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		Config:      cfg,
		Registry:    models.NewModelRegistry(nil),
		Metrics:     monitoring.NewMetricsCollector(),
		Monitor:     monitoring.NewMonitor(),
		FileCatalog: menu.NewFileProvider(cfg.Menu.Path),
	}

	var provider menu.Provider = a.FileCatalog
	if cfg.Menu.Source == "database" {
		store, err := a.OpenStore()
		if err != nil {
			return nil, err
		}
		provider = store
	}

	tuning, err := cfg.Engine.Tuning()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app: engine tuning: %w", err)
	}
	a.Tuning = tuning

	if cfg.LLMActive() {
		if llmTier, err := a.menuPlanner(); err != nil {
			logging.Warn().Err(err).Str("provider", cfg.LLM.Provider).Msg("LLM tier disabled")
		} else {
			a.Strategies = append(a.Strategies, llmTier)
		}
	}
	a.Strategies = append(a.Strategies, combo.NewEngine(tuning), combo.NewRuleBased())

	chain := planner.NewChain(a.Metrics, a.Strategies...)
	a.Service = planner.NewService(provider, chain, a.Monitor)

	logging.Info().Strs("strategies", chain.Strategies()).Str("menu_source", cfg.Menu.Source).Msg("service assembled")
	return a, nil
}

func (a *App) menuPlanner() (*agents.MenuPlanner, error) {
	llm := a.Config.LLM
	a.Registry = models.NewModelRegistry(map[string]models.ModelProvider{llm.Model: llm.ModelProvider()})

	model, err := a.Registry.GetModel(llm.Model)
	if err != nil {
		return nil, fmt.Errorf("app: initialize %s model: %w", llm.Provider, err)
	}
	return agents.NewMenuPlanner(model,
		agents.WithModelName(llm.Model),
		agents.WithTemperature(llm.Temperature),
		agents.WithMaxTokens(llm.MaxTokens),
		agents.WithTimeout(llm.Timeout),
	), nil
}

// OpenStore opens the database catalog store, migrating its table. It is
// opened once per App.
func (a *App) OpenStore() (*database.CatalogStore, error) {
	if a.Store != nil {
		return a.Store, nil
	}
	db, err := database.Open(a.Config.Database.Dialect, a.Config.Database.URL)
	if err != nil {
		return nil, err
	}
	store := database.NewCatalogStore(db)
	if err := store.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	a.db = db
	a.Store = store
	return store, nil
}

// Seed writes the JSON catalog into the database store.
func (a *App) Seed(ctx context.Context) error {
	store, err := a.OpenStore()
	if err != nil {
		return err
	}
	catalog, err := a.FileCatalog.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("app: seed: %w", err)
	}
	if err := store.Seed(ctx, catalog); err != nil {
		return err
	}
	logging.Info().Str("source", a.FileCatalog.Path()).Strs("periods", catalog.Periods()).Msg("catalog seeded")
	return nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
