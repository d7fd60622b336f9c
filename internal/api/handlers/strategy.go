package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/halcyon-lab/halcyon-trading/internal/api/models"
	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/strategy"
)

// StrategyHandler exposes the strategy registry.
type StrategyHandler struct {
	registry *strategy.Registry
}

// NewStrategyHandler creates a strategy handler over a registry.
func NewStrategyHandler(registry *strategy.Registry) *StrategyHandler {
	return &StrategyHandler{registry: registry}
}

// ListStrategies handles GET /api/v1/strategies.
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	kinds := h.registry.Kinds()

	strategies := make([]string, len(kinds))
	for i, kind := range kinds {
		strategies[i] = string(kind)
	}

	c.JSON(http.StatusOK, models.StrategiesResponse{Strategies: strategies})
}

// RunConfigSchema handles GET /api/v1/run-config/schema. It returns the JSON
// schema the run configuration of both the CLI and the backtest endpoints
// must satisfy.
func (h *StrategyHandler) RunConfigSchema(c *gin.Context) {
	cfg := config.EmptyRunConfig()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		writeError(c, err)

		return
	}

	c.Data(http.StatusOK, "application/json", []byte(schemaJSON))
}
