package strategy

import (
	"fmt"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// MomentumBreakoutConfig parameterizes the volume-confirmed breakout variant.
type MomentumBreakoutConfig struct {
	Period int `yaml:"period" json:"period"`
	// VolumeThreshold is the multiple of average volume a breakout bar must trade
	VolumeThreshold float64 `yaml:"volume_threshold" json:"volume_threshold"`
}

// DefaultMomentumBreakoutConfig returns a 20-bar window with 1.5x volume
// confirmation.
func DefaultMomentumBreakoutConfig() MomentumBreakoutConfig {
	return MomentumBreakoutConfig{
		Period:          20,
		VolumeThreshold: 1.5,
	}
}

// MomentumBreakout buys a close above the window high on elevated volume and
// exits a close below the window low on the same confirmation.
type MomentumBreakout struct {
	base
	cfg MomentumBreakoutConfig
}

// NewMomentumBreakout validates the config and builds the variant.
func NewMomentumBreakout(cfg MomentumBreakoutConfig, settings config.Settings) (*MomentumBreakout, error) {
	if err := config.ValidatePeriod("period", cfg.Period, 5); err != nil {
		return nil, err
	}

	if err := config.ValidatePositive("volume_threshold", cfg.VolumeThreshold); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("MomentumBreakout(%d, %.1fx vol)", cfg.Period, cfg.VolumeThreshold)

	return &MomentumBreakout{
		base: newBase(name, cfg.Period+1, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals compares each close against the high, low and average
// volume of the window that ends just before it.
func (s *MomentumBreakout) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	highs := indicator.Highs(bars)
	lows := indicator.Lows(bars)
	volumes := indicator.Volumes(bars)

	signals := holdSignals(len(bars))
	inPosition := false

	for i := s.cfg.Period; i < len(bars); i++ {
		highest := highs[i-s.cfg.Period]
		lowest := lows[i-s.cfg.Period]

		var avgVolume float64
		for j := i - s.cfg.Period; j < i; j++ {
			if highs[j] > highest {
				highest = highs[j]
			}

			if lows[j] < lowest {
				lowest = lows[j]
			}

			avgVolume += volumes[j]
		}

		avgVolume /= float64(s.cfg.Period)
		confirmed := volumes[i] > avgVolume*s.cfg.VolumeThreshold

		switch {
		case !inPosition && bars[i].Close > highest && confirmed:
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && bars[i].Close < lowest && confirmed:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}
