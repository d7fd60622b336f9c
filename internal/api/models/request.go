// Package models defines the request and response bodies of the HTTP API.
package models

import (
	"github.com/halcyon-lab/halcyon-trading/internal/config"
)

// BacktestRequest is the body of POST /api/v1/backtest and
// POST /api/v1/backtest/compare. Config reuses the run configuration schema
// of the CLI, so the same document drives both surfaces.
type BacktestRequest struct {
	Config  config.RunConfig `json:"config" binding:"required"`
	Options BacktestOptions  `json:"options"`
}

// BacktestOptions toggles the optional payload sections of a backtest
// response. Both default to off: reports are small, trade logs and equity
// curves are not.
type BacktestOptions struct {
	IncludeTrades bool `json:"include_trades,omitempty"`
	IncludeEquity bool `json:"include_equity,omitempty"`
}
