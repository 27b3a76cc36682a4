// Package api serves the combo recommender over HTTP with gin.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"comboplanner/internal/logging"
	"comboplanner/internal/menu"
	"comboplanner/internal/models"
	"comboplanner/internal/planner"
)

// CatalogStore is the writable catalog behind the admin seed endpoint.
type CatalogStore interface {
	menu.Provider
	Seed(ctx context.Context, catalog *models.Catalog) error
}

// Options wires the API's collaborators. Only Service is required.
type Options struct {
	Service *planner.Service
	// SeedSource is read by the seed endpoint and written into Store.
	SeedSource menu.Provider
	Store      CatalogStore
	Limiter    *RateLimiter
	JWTSecret  string
}

// ComboAPI represents the main API handler for combo recommendations
type ComboAPI struct {
	Router     *gin.Engine
	service    *planner.Service
	seedSource menu.Provider
	store      CatalogStore
	limiter    *RateLimiter
	jwtSecret  string
}

// NewComboAPI creates a new combo API instance
func NewComboAPI(opts Options) *ComboAPI {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog())

	api := &ComboAPI{
		Router:     router,
		service:    opts.Service,
		seedSource: opts.SeedSource,
		store:      opts.Store,
		limiter:    opts.Limiter,
		jwtSecret:  opts.JWTSecret,
	}

	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (a *ComboAPI) setupRoutes() {
	a.Router.GET("/health", a.Health)

	v1 := a.Router.Group("/api/v1")
	{
		v1.POST("/combos", a.limiter.Middleware(), a.CreateCombos)
		v1.GET("/menu", a.GetMenu)

		admin := v1.Group("/admin", AuthMiddleware(a.jwtSecret))
		admin.GET("/catalog", a.GetCatalog)
		admin.POST("/catalog/seed", a.SeedCatalog)
	}
}

// Health reports whether the catalog can be loaded.
func (a *ComboAPI) Health(c *gin.Context) {
	if _, err := a.service.Catalog(c.Request.Context()); err != nil {
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("health check failed")
		c.String(http.StatusInternalServerError, "menu unavailable")
		return
	}
	c.String(http.StatusOK, "ok")
}

// CreateCombos answers a preferences request with ranked combos.
func (a *ComboAPI) CreateCombos(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	var req models.PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	resp, err := a.service.Recommend(c.Request.Context(), req.Sanitize())
	if err != nil {
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("recommendation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMenu returns the scoped, diet-filtered menu for ?meal= and ?diet=.
func (a *ComboAPI) GetMenu(c *gin.Context) {
	req := models.PreferencesRequest{Meal: c.Query("meal")}
	if diet := c.Query("diet"); diet != "" {
		req.Diet = strings.Split(diet, ",")
	}

	scoped, err := a.service.ScopedMenu(c.Request.Context(), req.Sanitize())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}
	c.JSON(http.StatusOK, scoped)
}

// GetCatalog returns the full catalog.
func (a *ComboAPI) GetCatalog(c *gin.Context) {
	catalog, err := a.service.Catalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// SeedCatalog copies the seed source catalog into the database store.
func (a *ComboAPI) SeedCatalog(c *gin.Context) {
	if a.store == nil || a.seedSource == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "no catalog store configured"})
		return
	}

	ctx := c.Request.Context()
	catalog, err := a.seedSource.Catalog(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := a.store.Seed(ctx, catalog); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("catalog seed failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Ctx(ctx).Info().Strs("periods", catalog.Periods()).Msg("catalog seeded")
	c.JSON(http.StatusOK, gin.H{"message": "Catalog seeded successfully", "periods": catalog.Periods()})
}
