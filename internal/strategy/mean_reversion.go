package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// MeanReversionConfig parameterizes the Bollinger %B reversion variant.
type MeanReversionConfig struct {
	Period     int     `yaml:"period" json:"period"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
	Oversold   float64 `yaml:"oversold" json:"oversold"`
	Overbought float64 `yaml:"overbought" json:"overbought"`
}

// DefaultMeanReversionConfig returns 20-bar bands at 2 standard deviations
// with entries below %B 0.2 and exits above %B 0.8.
func DefaultMeanReversionConfig() MeanReversionConfig {
	return MeanReversionConfig{
		Period:     20,
		Multiplier: 2.0,
		Oversold:   0.2,
		Overbought: 0.8,
	}
}

// MeanReversion buys when price sinks to the lower Bollinger region and
// sells when it stretches to the upper region.
type MeanReversion struct {
	base
	cfg MeanReversionConfig
}

// NewMeanReversion validates the config and builds the variant.
func NewMeanReversion(cfg MeanReversionConfig, settings config.Settings) (*MeanReversion, error) {
	if err := config.ValidatePeriod("period", cfg.Period, 2); err != nil {
		return nil, err
	}

	if err := config.ValidateRange("multiplier", cfg.Multiplier, 1, 3); err != nil {
		return nil, err
	}

	if err := config.ValidateRange("oversold", cfg.Oversold, 0, 0.5); err != nil {
		return nil, err
	}

	if err := config.ValidateRange("overbought", cfg.Overbought, 0.5, 1); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("MeanReversion(%d, %.1fσ)", cfg.Period, cfg.Multiplier)

	return &MeanReversion{
		base: newBase(name, cfg.Period, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits on %B threshold crossings.
func (s *MeanReversion) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	bands := indicator.ComputeBollingerBands(closes, s.cfg.Period, s.cfg.Multiplier)
	pb := bands.PercentB(closes)

	signals := holdSignals(len(bars))
	inPosition := false

	for i := 0; i < len(bars); i++ {
		if math.IsNaN(pb[i]) {
			continue
		}

		switch {
		case !inPosition && pb[i] <= s.cfg.Oversold:
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && pb[i] >= s.cfg.Overbought:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}
