package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// BreakoutConfig parameterizes the ATR-filtered channel breakout variant.
type BreakoutConfig struct {
	Lookback      int     `yaml:"lookback" json:"lookback"`
	ATRPeriod     int     `yaml:"atr_period" json:"atr_period"`
	ATRMultiplier float64 `yaml:"atr_multiplier" json:"atr_multiplier"`
}

// DefaultBreakoutConfig returns a 20-bar channel with a 14-bar ATR filter.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Lookback:      20,
		ATRPeriod:     14,
		ATRMultiplier: 1.0,
	}
}

// Breakout buys when the close clears the trailing high by an ATR margin and
// exits when the close falls through the trailing low by the same margin.
type Breakout struct {
	base
	cfg BreakoutConfig
}

// NewBreakout validates the config and builds the variant.
func NewBreakout(cfg BreakoutConfig, settings config.Settings) (*Breakout, error) {
	if err := config.ValidatePeriod("lookback", cfg.Lookback, 2); err != nil {
		return nil, err
	}

	if err := config.ValidatePeriod("atr_period", cfg.ATRPeriod, 1); err != nil {
		return nil, err
	}

	if err := config.ValidatePositive("atr_multiplier", cfg.ATRMultiplier); err != nil {
		return nil, err
	}

	minBars := cfg.Lookback + 1
	if cfg.ATRPeriod+1 > minBars {
		minBars = cfg.ATRPeriod + 1
	}

	name := fmt.Sprintf("Breakout(%d, %d, %.1fx)", cfg.Lookback, cfg.ATRPeriod, cfg.ATRMultiplier)

	return &Breakout{
		base: newBase(name, minBars, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits when the close clears the channel plus an ATR margin.
// The channel is built from the bars before the current one.
func (s *Breakout) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	resistance := indicator.RollingMax(indicator.Highs(bars), s.cfg.Lookback)
	support := indicator.RollingMin(indicator.Lows(bars), s.cfg.Lookback)
	atr := indicator.ATR(bars, s.cfg.ATRPeriod)

	signals := holdSignals(len(bars))
	inPosition := false

	for i := 1; i < len(bars); i++ {
		// channel and ATR from the previous bar so the breakout bar itself
		// does not raise its own hurdle
		if math.IsNaN(resistance[i-1]) || math.IsNaN(atr[i-1]) {
			continue
		}

		margin := atr[i-1] * s.cfg.ATRMultiplier
		close := bars[i].Close

		switch {
		case !inPosition && close > resistance[i-1]+margin:
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && close < support[i-1]-margin:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}
