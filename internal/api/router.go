// Package api assembles the HTTP surface of the backtester: strategy and
// provider discovery, run configuration schemas, and backtest execution over
// datasets on the server's filesystem.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/halcyon-lab/halcyon-trading/internal/api/handlers"
	"github.com/halcyon-lab/halcyon-trading/internal/api/middleware"
	"github.com/halcyon-lab/halcyon-trading/internal/logger"
	"github.com/halcyon-lab/halcyon-trading/internal/strategy"
	"github.com/halcyon-lab/halcyon-trading/internal/version"
)

// Server owns the router and the resources its handlers hold.
type Server struct {
	Router   *gin.Engine
	backtest *handlers.BacktestHandler
}

// NewServer wires the full route table over a strategy registry.
func NewServer(log *logger.Logger, registry *strategy.Registry) (*Server, error) {
	backtestHandler, err := handlers.NewBacktestHandler(log, registry)
	if err != nil {
		return nil, err
	}

	strategyHandler := handlers.NewStrategyHandler(registry)
	providerHandler := handlers.NewProviderHandler()

	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.GetVersion()})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/strategies", strategyHandler.ListStrategies)
		v1.GET("/run-config/schema", strategyHandler.RunConfigSchema)

		v1.GET("/providers", providerHandler.ListProviders)
		v1.GET("/providers/:name/schema", providerHandler.ProviderSchema)

		v1.POST("/backtest", backtestHandler.RunBacktest)
		v1.POST("/backtest/compare", backtestHandler.CompareBacktests)
	}

	return &Server{
		Router:   router,
		backtest: backtestHandler,
	}, nil
}

// Close releases handler resources.
func (s *Server) Close() error {
	return s.backtest.Close()
}
