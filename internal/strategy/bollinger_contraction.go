package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// BollingerContractionConfig parameterizes the band-squeeze variant.
type BollingerContractionConfig struct {
	Period         int     `yaml:"period" json:"period"`
	Multiplier     float64 `yaml:"multiplier" json:"multiplier"`
	WidthThreshold float64 `yaml:"width_threshold" json:"width_threshold"`
}

// DefaultBollingerContractionConfig returns 20-bar bands at 2 standard
// deviations with a 2% squeeze threshold.
func DefaultBollingerContractionConfig() BollingerContractionConfig {
	return BollingerContractionConfig{
		Period:         20,
		Multiplier:     2.0,
		WidthThreshold: 0.02,
	}
}

// BollingerContraction waits for the band width to squeeze below a
// threshold and trades the direction of the expansion that follows.
type BollingerContraction struct {
	base
	cfg BollingerContractionConfig
}

// NewBollingerContraction validates the config and builds the variant.
func NewBollingerContraction(cfg BollingerContractionConfig, settings config.Settings) (*BollingerContraction, error) {
	if err := config.ValidatePeriod("period", cfg.Period, 5); err != nil {
		return nil, err
	}

	if err := config.ValidateRange("multiplier", cfg.Multiplier, 1, 3); err != nil {
		return nil, err
	}

	if err := config.ValidatePositive("width_threshold", cfg.WidthThreshold); err != nil {
		return nil, err
	}

	if err := config.ValidateRange("width_threshold", cfg.WidthThreshold, 0, 0.5); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("BollingerContraction(%d, %.2f%%)", cfg.Period, cfg.WidthThreshold*100)

	return &BollingerContraction{
		base: newBase(name, cfg.Period+1, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits when a squeeze resolves into an expansion.
func (s *BollingerContraction) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	bands := indicator.ComputeBollingerBands(closes, s.cfg.Period, s.cfg.Multiplier)
	width := bands.Width()

	signals := holdSignals(len(bars))
	inPosition := false

	for i := 1; i < len(bars); i++ {
		if math.IsNaN(width[i]) || math.IsNaN(width[i-1]) {
			continue
		}

		// the previous bar was squeezed and this one is widening again
		expanding := width[i-1] < s.cfg.WidthThreshold && width[i] > width[i-1]

		switch {
		case !inPosition && expanding && closes[i] > bands.Middle[i]:
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && closes[i] < bands.Middle[i]:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}
