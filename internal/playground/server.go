// Package playground serves an interactive evaluation surface: scenario
// evaluation over HTTP and live regenerate over a websocket.
package playground

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comboplanner/internal/evaluation"
	"comboplanner/internal/models"
	"comboplanner/internal/monitoring"
	"comboplanner/internal/planner"
)

// Options wires the playground to the rest of the service.
type Options struct {
	Service   *planner.Service
	Registry  *models.ModelRegistry
	Evaluator *evaluation.Evaluator
	Monitor   *monitoring.Monitor
	// Strategies are the built-in tiers selectable by name in /api/evaluate.
	Strategies []planner.Strategy
	// MaxTokens is reported for registry models.
	MaxTokens int
}

// PlaygroundServer handles evaluation and live recommendation requests
type PlaygroundServer struct {
	router     *gin.Engine
	service    *planner.Service
	registry   *models.ModelRegistry
	evaluator  *evaluation.Evaluator
	monitor    *monitoring.Monitor
	strategies map[string]planner.Strategy
	maxTokens  int
}

// NewPlaygroundServer creates a new playground server instance
func NewPlaygroundServer(opts Options) *PlaygroundServer {
	server := &PlaygroundServer{
		router:     gin.New(),
		service:    opts.Service,
		registry:   opts.Registry,
		evaluator:  opts.Evaluator,
		monitor:    opts.Monitor,
		strategies: make(map[string]planner.Strategy, len(opts.Strategies)),
		maxTokens:  opts.MaxTokens,
	}
	if server.registry == nil {
		server.registry = models.NewModelRegistry(nil)
	}
	if server.monitor == nil {
		server.monitor = monitoring.NewMonitor()
	}
	for _, s := range opts.Strategies {
		server.strategies[s.Name()] = s
	}

	server.router.Use(gin.Recovery())
	server.setupRoutes()
	return server
}

// setupRoutes configures the API routes
func (s *PlaygroundServer) setupRoutes() {
	s.router.GET("/", s.handleHome)
	s.router.GET("/ws", s.handleWebSocket)

	api := s.router.Group("/api")
	{
		api.GET("/models", s.handleListModels)
		api.POST("/models/:id/check", s.handleCheckModel)
		api.GET("/scenarios", s.handleListScenarios)
		api.GET("/metrics", s.handleMetrics)
		api.POST("/evaluate", s.handleEvaluate)
	}
}

// Router returns the Gin router
func (s *PlaygroundServer) Router() *gin.Engine {
	return s.router
}

// handleHome lists the playground endpoints
func (s *PlaygroundServer) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":     "Combo Planner Playground",
		"endpoints": []string{"/api/models", "/api/scenarios", "/api/metrics", "/api/evaluate", "/ws"},
	})
}
