package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// VWAPReversionConfig parameterizes the VWAP deviation variant.
type VWAPReversionConfig struct {
	Lookback  int     `yaml:"lookback" json:"lookback"`
	Deviation float64 `yaml:"deviation" json:"deviation"`
}

// DefaultVWAPReversionConfig returns a 20-bar VWAP with a 1% deviation band.
func DefaultVWAPReversionConfig() VWAPReversionConfig {
	return VWAPReversionConfig{
		Lookback:  20,
		Deviation: 0.01,
	}
}

// VWAPReversion buys when price trades a fixed fraction below the rolling
// VWAP and sells when it trades the same fraction above.
type VWAPReversion struct {
	base
	cfg VWAPReversionConfig
}

// NewVWAPReversion validates the config and builds the variant.
func NewVWAPReversion(cfg VWAPReversionConfig, settings config.Settings) (*VWAPReversion, error) {
	if err := config.ValidatePeriod("lookback", cfg.Lookback, 2); err != nil {
		return nil, err
	}

	if err := config.ValidatePositive("deviation", cfg.Deviation); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("VWAPReversion(%d, %.2f%%)", cfg.Lookback, cfg.Deviation*100)

	return &VWAPReversion{
		base: newBase(name, cfg.Lookback, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits when the close deviates from VWAP past the band.
func (s *VWAPReversion) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	vwap := indicator.VWAP(bars, s.cfg.Lookback)

	signals := holdSignals(len(bars))
	inPosition := false

	for i := 0; i < len(bars); i++ {
		if math.IsNaN(vwap[i]) || vwap[i] == 0 {
			continue
		}

		deviation := (closes[i] - vwap[i]) / vwap[i]

		switch {
		case !inPosition && deviation <= -s.cfg.Deviation:
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && deviation >= s.cfg.Deviation:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}
