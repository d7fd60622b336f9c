package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// ZScoreConfig parameterizes the statistical reversion variant.
type ZScoreConfig struct {
	Lookback       int     `yaml:"lookback" json:"lookback"`
	EntryThreshold float64 `yaml:"entry_threshold" json:"entry_threshold"`
	ExitThreshold  float64 `yaml:"exit_threshold" json:"exit_threshold"`
}

// DefaultZScoreConfig returns a 20-bar window entering at 2 standard
// deviations below the mean and exiting at half a deviation.
func DefaultZScoreConfig() ZScoreConfig {
	return ZScoreConfig{
		Lookback:       20,
		EntryThreshold: 2.0,
		ExitThreshold:  0.5,
	}
}

// ZScore buys statistically depressed closes and exits once the z-score
// recovers toward the rolling mean.
type ZScore struct {
	base
	cfg ZScoreConfig
}

// NewZScore validates the config and builds the variant.
func NewZScore(cfg ZScoreConfig, settings config.Settings) (*ZScore, error) {
	if err := config.ValidatePeriod("lookback", cfg.Lookback, 10); err != nil {
		return nil, err
	}

	if err := config.ValidatePositive("entry_threshold", cfg.EntryThreshold); err != nil {
		return nil, err
	}

	if err := config.ValidatePositive("exit_threshold", cfg.ExitThreshold); err != nil {
		return nil, err
	}

	if cfg.ExitThreshold >= cfg.EntryThreshold {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold,
			"exit_threshold %.2f must be below entry_threshold %.2f", cfg.ExitThreshold, cfg.EntryThreshold)
	}

	name := fmt.Sprintf("ZScore(%d, %.1fσ/%.1fσ)", cfg.Lookback, cfg.EntryThreshold, cfg.ExitThreshold)

	return &ZScore{
		base: newBase(name, cfg.Lookback+1, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits on z-score threshold crossings.
func (s *ZScore) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	zscores := indicator.ZScores(closes, s.cfg.Lookback)

	signals := holdSignals(len(bars))
	inPosition := false

	for i := 0; i < len(bars); i++ {
		if math.IsNaN(zscores[i]) {
			continue
		}

		switch {
		case !inPosition && zscores[i] <= -s.cfg.EntryThreshold:
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && zscores[i] >= -s.cfg.ExitThreshold:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}
