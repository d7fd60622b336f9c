package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// RSIOscillatorConfig parameterizes the RSI threshold variant.
type RSIOscillatorConfig struct {
	RSIPeriod  int     `yaml:"rsi_period" json:"rsi_period"`
	Oversold   float64 `yaml:"oversold" json:"oversold"`
	Overbought float64 `yaml:"overbought" json:"overbought"`
}

// DefaultRSIOscillatorConfig returns the classic 14-bar 30/70 thresholds.
func DefaultRSIOscillatorConfig() RSIOscillatorConfig {
	return RSIOscillatorConfig{
		RSIPeriod:  14,
		Oversold:   30,
		Overbought: 70,
	}
}

// rsiCenterline is the neutral RSI level an open long exits at.
const rsiCenterline = 50.0

// RSIOscillator buys an oversold reading confirmed by a rising close and
// exits once the RSI recovers to the centerline.
type RSIOscillator struct {
	base
	cfg RSIOscillatorConfig
}

// NewRSIOscillator validates the config and builds the variant.
func NewRSIOscillator(cfg RSIOscillatorConfig, settings config.Settings) (*RSIOscillator, error) {
	if err := config.ValidatePeriod("rsi_period", cfg.RSIPeriod, 2); err != nil {
		return nil, err
	}

	if err := config.ValidateRange("oversold", cfg.Oversold, 0, 50); err != nil {
		return nil, err
	}

	if err := config.ValidateRange("overbought", cfg.Overbought, 50, 100); err != nil {
		return nil, err
	}

	if cfg.Overbought-cfg.Oversold < 20 {
		return nil, errors.Newf(errors.ErrCodeInvalidRange,
			"overbought %.1f must sit at least 20 points above oversold %.1f", cfg.Overbought, cfg.Oversold)
	}

	name := fmt.Sprintf("RSIOscillator(%d, %.0f/%.0f)", cfg.RSIPeriod, cfg.Oversold, cfg.Overbought)

	return &RSIOscillator{
		base: newBase(name, cfg.RSIPeriod+1, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits on confirmed oversold readings and centerline exits.
func (s *RSIOscillator) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	rsi := indicator.RSI(closes, s.cfg.RSIPeriod)

	signals := holdSignals(len(bars))
	inPosition := false

	for i := 1; i < len(bars); i++ {
		if math.IsNaN(rsi[i]) {
			continue
		}

		// a rising close confirms the oversold reading is turning
		confirmed := closes[i] > closes[i-1]

		switch {
		case !inPosition && rsi[i] <= s.cfg.Oversold && confirmed:
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && rsi[i] >= rsiCenterline:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}
