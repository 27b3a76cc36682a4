package playground

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"comboplanner/internal/agents"
	"comboplanner/internal/logging"
	"comboplanner/internal/models"
	"comboplanner/internal/planner"
)

const modelCheckTimeout = 15 * time.Second

// ModelInfo represents information about an available LLM
type ModelInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	MaxTokens int    `json:"maxTokens"`
}

// ScenarioInfo represents information about an available test scenario
type ScenarioInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// EvaluationRequest names what to evaluate: a built-in strategy, or a
// registry model run through the LLM planner.
type EvaluationRequest struct {
	Strategy string `json:"strategy"`
	Model    string `json:"model"`
	Scenario string `json:"scenario" binding:"required"`
	Variants int    `json:"variants"`
}

// handleListModels returns the registered models
func (s *PlaygroundServer) handleListModels(c *gin.Context) {
	infos := s.registry.List()
	out := make([]ModelInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, ModelInfo{
			ID:        info.ID,
			Name:      info.Name,
			Type:      string(info.Provider),
			MaxTokens: s.maxTokens,
		})
	}
	c.JSON(http.StatusOK, out)
}

// handleCheckModel sends a short prompt to a registered model
func (s *PlaygroundServer) handleCheckModel(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), modelCheckTimeout)
	defer cancel()

	start := time.Now()
	err := s.registry.CheckModel(ctx, id)
	if errors.Is(err, models.ErrUnknownModel) {
		c.JSON(http.StatusNotFound, gin.H{"id": id, "ok": false, "error": err.Error()})
		return
	}
	s.monitor.RecordMetric("model_"+id+"_ok", err == nil)
	if err != nil {
		logging.Ctx(c.Request.Context()).Warn().Err(err).Str("model", id).Msg("model check failed")
		c.JSON(http.StatusBadGateway, gin.H{"id": id, "ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "ok": true, "latency_ms": time.Since(start).Milliseconds()})
}

// handleListScenarios returns the evaluation scenarios
func (s *PlaygroundServer) handleListScenarios(c *gin.Context) {
	scenarios := s.evaluator.GetScenarios()
	infos := make([]ScenarioInfo, 0, len(scenarios))
	for _, sc := range scenarios {
		infos = append(infos, ScenarioInfo{
			ID:          sc.ID,
			Name:        sc.Name,
			Type:        sc.Type,
			Description: sc.Description,
		})
	}
	c.JSON(http.StatusOK, infos)
}

// handleMetrics returns current evaluation metrics
func (s *PlaygroundServer) handleMetrics(c *gin.Context) {
	metrics := s.monitor.GetMetrics()
	c.JSON(http.StatusOK, metrics)
}

// handleEvaluate runs an evaluation and returns its result
func (s *PlaygroundServer) handleEvaluate(c *gin.Context) {
	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy, err := s.resolveStrategy(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !s.evaluator.HasScenario(req.Scenario) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scenario: " + req.Scenario})
		return
	}

	result, err := s.evaluator.EvaluateStrategy(c.Request.Context(), strategy, req.Scenario, req.Variants)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// resolveStrategy picks a registry model when one is named, else a built-in
// strategy, defaulting to the generator.
func (s *PlaygroundServer) resolveStrategy(req EvaluationRequest) (planner.Strategy, error) {
	if req.Model != "" {
		model, err := s.registry.GetModel(req.Model)
		if err != nil {
			return nil, fmt.Errorf("invalid model: %s", req.Model)
		}
		return agents.NewMenuPlanner(model, agents.WithModelName(req.Model)), nil
	}

	name := req.Strategy
	if name == "" {
		name = "generator"
	}
	if strategy, ok := s.strategies[name]; ok {
		return strategy, nil
	}
	return nil, fmt.Errorf("invalid strategy: %s (available: %s)", name, joinNames(s.strategies))
}

func joinNames(strategies map[string]planner.Strategy) string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
