package models

import (
	"time"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/marketdata"
)

// ErrorDetail carries the numeric error code of the failure plus a
// human-readable message.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body of every endpoint.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// TradeRow is one completed round trip in a backtest response.
type TradeRow struct {
	EntryTime  time.Time `json:"entry_time"`
	ExitTime   time.Time `json:"exit_time"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	Quantity   float64   `json:"quantity"`
	PnL        float64   `json:"pnl"`
	Forced     bool      `json:"forced,omitempty"`
}

// NewTradeRows converts engine trades into response rows.
func NewTradeRows(trades []types.Trade) []TradeRow {
	rows := make([]TradeRow, len(trades))
	for i, t := range trades {
		rows[i] = TradeRow{
			EntryTime:  t.EntryTime,
			ExitTime:   t.ExitTime,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			Quantity:   t.Quantity,
			PnL:        t.PnL,
			Forced:     t.Forced,
		}
	}

	return rows
}

// BacktestResponse is the body of a successful POST /api/v1/backtest.
type BacktestResponse struct {
	Status string                  `json:"status"`
	Report types.PerformanceReport `json:"report"`
	Trades []TradeRow              `json:"trades,omitempty"`
	Equity []float64               `json:"equity,omitempty"`
}

// StrategyOutcome is one strategy's slot in a comparison response: a report
// or the error that stopped that run.
type StrategyOutcome struct {
	Strategy string                   `json:"strategy"`
	Report   *types.PerformanceReport `json:"report,omitempty"`
	Error    string                   `json:"error,omitempty"`
}

// CompareResponse is the body of a successful POST /api/v1/backtest/compare.
// Results line up with the strategies of the request.
type CompareResponse struct {
	Results []StrategyOutcome `json:"results"`
}

// StrategiesResponse lists the registered strategy kinds.
type StrategiesResponse struct {
	Strategies []string `json:"strategies"`
}

// ProvidersResponse lists the supported market data providers.
type ProvidersResponse struct {
	Providers []marketdata.ProviderInfo `json:"providers"`
}
