package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// VolatilityBreakoutConfig parameterizes the contraction-then-expansion variant.
type VolatilityBreakoutConfig struct {
	Lookback        int     `yaml:"lookback" json:"lookback"`
	ContractionBars int     `yaml:"contraction_bars" json:"contraction_bars"`
	RangeMultiplier float64 `yaml:"range_multiplier" json:"range_multiplier"`
}

// DefaultVolatilityBreakoutConfig returns a 14-bar channel armed after
// 3 bars of shrinking ATR.
func DefaultVolatilityBreakoutConfig() VolatilityBreakoutConfig {
	return VolatilityBreakoutConfig{
		Lookback:        14,
		ContractionBars: 3,
		RangeMultiplier: 1.5,
	}
}

// VolatilityBreakout waits for ATR to contract over consecutive bars, arms
// breakout levels around the recent range, and buys the upside break.
type VolatilityBreakout struct {
	base
	cfg VolatilityBreakoutConfig
}

// NewVolatilityBreakout validates the config and builds the variant.
func NewVolatilityBreakout(cfg VolatilityBreakoutConfig, settings config.Settings) (*VolatilityBreakout, error) {
	if err := config.ValidatePeriod("lookback", cfg.Lookback, 5); err != nil {
		return nil, err
	}

	if err := config.ValidatePeriod("contraction_bars", cfg.ContractionBars, 2); err != nil {
		return nil, err
	}

	if cfg.ContractionBars >= cfg.Lookback {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod,
			"contraction_bars %d must be below lookback %d", cfg.ContractionBars, cfg.Lookback)
	}

	if cfg.RangeMultiplier < 1.0 {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold,
			"range_multiplier %.2f must be at least 1.0", cfg.RangeMultiplier)
	}

	name := fmt.Sprintf("VolatilityBreakout(%d, %d bars, %.1fx)",
		cfg.Lookback, cfg.ContractionBars, cfg.RangeMultiplier)

	return &VolatilityBreakout{
		base: newBase(name, cfg.Lookback+cfg.ContractionBars+1, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals arms levels after an ATR contraction and trades the break.
func (s *VolatilityBreakout) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	atr := indicator.ATR(bars, s.cfg.Lookback)
	highest := indicator.RollingMax(indicator.Highs(bars), s.cfg.Lookback)
	lowest := indicator.RollingMin(indicator.Lows(bars), s.cfg.Lookback)

	signals := holdSignals(len(bars))
	inPosition := false
	armed := false

	var upper, lower float64

	for i := 0; i < len(bars); i++ {
		if !armed && s.contracted(atr, i) && !math.IsNaN(highest[i]) && !math.IsNaN(lowest[i]) {
			// widen the channel by the extra range the multiplier asks for,
			// split evenly between the two sides
			margin := (highest[i] - lowest[i]) * (s.cfg.RangeMultiplier - 1) / 2
			upper = highest[i] + margin
			lower = lowest[i] - margin
			armed = true
			continue
		}

		if !armed {
			continue
		}

		switch {
		case !inPosition && closes[i] > upper:
			signals[i] = types.SignalBuy
			inPosition = true
			armed = false
		case inPosition && closes[i] < lower:
			signals[i] = types.SignalSell
			inPosition = false
			armed = false
		case !inPosition && closes[i] < lower:
			// downside break with no position just disarms the setup
			armed = false
		}
	}

	return signals, nil
}

// contracted reports whether ATR shrank on each of the configured bars
// ending at index i.
func (s *VolatilityBreakout) contracted(atr []float64, i int) bool {
	if i < s.cfg.ContractionBars {
		return false
	}

	for j := i - s.cfg.ContractionBars + 1; j <= i; j++ {
		if math.IsNaN(atr[j]) || math.IsNaN(atr[j-1]) || atr[j] >= atr[j-1] {
			return false
		}
	}

	return true
}
