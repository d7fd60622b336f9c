package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/halcyon-lab/halcyon-trading/internal/api/models"
	"github.com/halcyon-lab/halcyon-trading/internal/backtest"
	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/loader"
	"github.com/halcyon-lab/halcyon-trading/internal/logger"
	"github.com/halcyon-lab/halcyon-trading/internal/strategy"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// BacktestHandler runs backtests and comparisons over datasets on the
// server's filesystem.
type BacktestHandler struct {
	log      *logger.Logger
	registry *strategy.Registry
	loader   *loader.Loader
}

// NewBacktestHandler creates a backtest handler with its own dataset loader.
func NewBacktestHandler(log *logger.Logger, registry *strategy.Registry) (*BacktestHandler, error) {
	barLoader, err := loader.NewLoader(log)
	if err != nil {
		return nil, err
	}

	return &BacktestHandler{
		log:      log,
		registry: registry,
		loader:   barLoader,
	}, nil
}

// Close releases the handler's loader.
func (h *BacktestHandler) Close() error {
	return h.loader.Close()
}

// prepare validates the request config and resolves it into strategies and
// the bar series they run over.
func (h *BacktestHandler) prepare(cfg *config.RunConfig) ([]strategy.Strategy, []types.Bar, config.Settings, error) {
	if cfg.InitialBalance == 0 {
		cfg.InitialBalance = config.DefaultInitialBalance
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, config.Settings{}, err
	}

	settings, err := cfg.Settings()
	if err != nil {
		return nil, nil, config.Settings{}, err
	}

	strategies := make([]strategy.Strategy, len(cfg.Strategies))
	for i, sc := range cfg.Strategies {
		s, err := h.registry.Create(strategy.Kind(sc.Kind), sc.Params, settings)
		if err != nil {
			return nil, nil, config.Settings{}, err
		}

		strategies[i] = s
	}

	bars, err := h.loader.Load(cfg.DataPath)
	if err != nil {
		return nil, nil, config.Settings{}, err
	}

	return strategies, bars, settings, nil
}

// RunBacktest handles POST /api/v1/backtest. The config must name exactly
// one strategy; comparisons go through the compare endpoint.
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)

		return
	}

	if len(req.Config.Strategies) != 1 {
		writeError(c, errors.Newf(errors.ErrCodeInvalidConfiguration,
			"backtest takes exactly one strategy, got %d (use /backtest/compare for batches)",
			len(req.Config.Strategies)))

		return
	}

	strategies, bars, settings, err := h.prepare(&req.Config)
	if err != nil {
		writeError(c, err)

		return
	}

	signals, err := strategies[0].GenerateSignals(bars)
	if err != nil {
		writeError(c, err)

		return
	}

	result, err := backtest.Run(bars, signals, backtest.Options{
		InitialBalance: req.Config.InitialBalance,
		Costs:          strategies[0].Costs(),
		Granularity:    settings.Granularity,
		BarsPerSession: req.Config.BarsPerSession,
		Strategy:       strategies[0].Name(),
	})
	if err != nil {
		writeError(c, err)

		return
	}

	h.log.Info("backtest completed",
		zap.String("strategy", strategies[0].Name()),
		zap.Int("bars", len(bars)),
		zap.Int("trades", result.Report.TotalTrades),
	)

	resp := models.BacktestResponse{
		Status: "ok",
		Report: result.Report,
	}
	if req.Options.IncludeTrades {
		resp.Trades = models.NewTradeRows(result.Trades)
	}

	if req.Options.IncludeEquity {
		resp.Equity = result.Equity
	}

	c.JSON(http.StatusOK, resp)
}

// CompareBacktests handles POST /api/v1/backtest/compare. Every strategy of
// the config runs over the same series; one failing strategy fills its own
// error slot without failing the request.
func (h *BacktestHandler) CompareBacktests(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)

		return
	}

	strategies, bars, _, err := h.prepare(&req.Config)
	if err != nil {
		writeError(c, err)

		return
	}

	outcomes := backtest.Compare(c.Request.Context(), strategies, bars, backtest.CompareOptions{
		InitialBalance: req.Config.InitialBalance,
		BarsPerSession: req.Config.BarsPerSession,
		Parallelism:    req.Config.Parallelism,
	})

	results := make([]models.StrategyOutcome, len(outcomes))
	for i, outcome := range outcomes {
		results[i] = models.StrategyOutcome{Strategy: outcome.Strategy}
		if outcome.Err != nil {
			results[i].Error = outcome.Err.Error()

			continue
		}

		results[i].Report = &outcome.Result.Report
	}

	h.log.Info("comparison completed",
		zap.Int("strategies", len(strategies)),
		zap.Int("bars", len(bars)),
	)

	c.JSON(http.StatusOK, models.CompareResponse{Results: results})
}
