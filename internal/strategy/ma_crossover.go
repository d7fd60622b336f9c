package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// MACrossoverConfig parameterizes the moving-average crossover variant.
type MACrossoverConfig struct {
	ShortPeriod int `yaml:"short_period" json:"short_period"`
	LongPeriod  int `yaml:"long_period" json:"long_period"`
}

// DefaultMACrossoverConfig returns the standard 10/30 crossover.
func DefaultMACrossoverConfig() MACrossoverConfig {
	return MACrossoverConfig{
		ShortPeriod: 10,
		LongPeriod:  30,
	}
}

// MACrossover buys when the short SMA crosses above the long SMA and sells
// the position when it crosses back below.
type MACrossover struct {
	base
	cfg MACrossoverConfig
}

// NewMACrossover validates the config and builds the variant.
func NewMACrossover(cfg MACrossoverConfig, settings config.Settings) (*MACrossover, error) {
	if err := config.ValidatePeriod("short_period", cfg.ShortPeriod, 1); err != nil {
		return nil, err
	}

	if cfg.LongPeriod <= cfg.ShortPeriod {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod,
			"long_period %d must exceed short_period %d", cfg.LongPeriod, cfg.ShortPeriod)
	}

	name := fmt.Sprintf("MACrossover(%d/%d)", cfg.ShortPeriod, cfg.LongPeriod)

	return &MACrossover{
		base: newBase(name, cfg.LongPeriod+1, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits Buy on golden crosses and Sell on death crosses.
func (s *MACrossover) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	short := indicator.SMA(closes, s.cfg.ShortPeriod)
	long := indicator.SMA(closes, s.cfg.LongPeriod)

	signals := holdSignals(len(bars))
	inPosition := false

	for i := s.cfg.LongPeriod; i < len(bars); i++ {
		if math.IsNaN(long[i-1]) || math.IsNaN(long[i]) {
			continue
		}

		crossedUp := short[i] > long[i] && short[i-1] <= long[i-1]
		crossedDown := short[i] < long[i] && short[i-1] >= long[i-1]

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
