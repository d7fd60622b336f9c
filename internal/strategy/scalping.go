package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// ScalpingConfig parameterizes the fast EMA momentum-burst variant.
type ScalpingConfig struct {
	Period int `yaml:"period" json:"period"`
	// Threshold is the minimum one-bar price change, as a fraction
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// DefaultScalpingConfig returns a 5-bar EMA with a 0.1% burst threshold.
func DefaultScalpingConfig() ScalpingConfig {
	return ScalpingConfig{
		Period:    5,
		Threshold: 0.001,
	}
}

// Scalping buys a sharp one-bar advance above the fast EMA and exits on a
// sharp decline below it.
type Scalping struct {
	base
	cfg ScalpingConfig
}

// NewScalping validates the config and builds the variant.
func NewScalping(cfg ScalpingConfig, settings config.Settings) (*Scalping, error) {
	if err := config.ValidatePeriod("period", cfg.Period, 1); err != nil {
		return nil, err
	}

	if err := config.ValidateRange("threshold", cfg.Threshold, 1e-6, 0.01); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("Scalping(%d, %.2f%%)", cfg.Period, cfg.Threshold*100)

	return &Scalping{
		base: newBase(name, cfg.Period+1, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits on threshold-sized bar moves confirmed by the EMA.
func (s *Scalping) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	ema := indicator.EMA(closes, s.cfg.Period)

	signals := holdSignals(len(bars))
	inPosition := false

	for i := 1; i < len(bars); i++ {
		if math.IsNaN(ema[i]) {
			continue
		}

		change := (closes[i] - closes[i-1]) / closes[i-1]

		switch {
		case !inPosition && change >= s.cfg.Threshold && closes[i] > ema[i]:
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && change <= -s.cfg.Threshold && closes[i] < ema[i]:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}
