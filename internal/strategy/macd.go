package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// MACDConfig parameterizes the MACD histogram variant.
type MACDConfig struct {
	FastPeriod   int `yaml:"fast_period" json:"fast_period"`
	SlowPeriod   int `yaml:"slow_period" json:"slow_period"`
	SignalPeriod int `yaml:"signal_period" json:"signal_period"`
}

// DefaultMACDConfig returns the classic 12/26/9 parameterization.
func DefaultMACDConfig() MACDConfig {
	return MACDConfig{
		FastPeriod:   12,
		SlowPeriod:   26,
		SignalPeriod: 9,
	}
}

// MACD trades the histogram's zero line: Buy when it crosses above zero,
// Sell the position when it crosses back below.
type MACD struct {
	base
	cfg MACDConfig
}

// NewMACD validates the config and builds the variant.
func NewMACD(cfg MACDConfig, settings config.Settings) (*MACD, error) {
	if err := config.ValidatePeriod("fast_period", cfg.FastPeriod, 1); err != nil {
		return nil, err
	}

	if err := config.ValidatePeriod("signal_period", cfg.SignalPeriod, 1); err != nil {
		return nil, err
	}

	if cfg.SlowPeriod <= cfg.FastPeriod {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod,
			"slow_period %d must exceed fast_period %d", cfg.SlowPeriod, cfg.FastPeriod)
	}

	name := fmt.Sprintf("MACD(%d/%d/%d)", cfg.FastPeriod, cfg.SlowPeriod, cfg.SignalPeriod)

	return &MACD{
		base: newBase(name, cfg.SlowPeriod+cfg.SignalPeriod, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits on histogram zero-line crossings.
func (s *MACD) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	macd := indicator.ComputeMACD(closes, s.cfg.FastPeriod, s.cfg.SlowPeriod, s.cfg.SignalPeriod)

	signals := holdSignals(len(bars))
	inPosition := false

	for i := 1; i < len(bars); i++ {
		if math.IsNaN(macd.Histogram[i-1]) || math.IsNaN(macd.Histogram[i]) {
			continue
		}

		crossedUp := macd.Histogram[i] > 0 && macd.Histogram[i-1] <= 0
		crossedDown := macd.Histogram[i] < 0 && macd.Histogram[i-1] >= 0

		switch {
		case !inPosition && crossedUp:
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && crossedDown:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}
