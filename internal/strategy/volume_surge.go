package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/indicator"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// VolumeSurgeConfig parameterizes the OBV confirmation variant.
type VolumeSurgeConfig struct {
	OBVPeriod       int     `yaml:"obv_period" json:"obv_period"`
	SurgeMultiplier float64 `yaml:"surge_multiplier" json:"surge_multiplier"`
}

// DefaultVolumeSurgeConfig returns a 20-bar OBV average requiring volume
// at twice its recent average.
func DefaultVolumeSurgeConfig() VolumeSurgeConfig {
	return VolumeSurgeConfig{
		OBVPeriod:       20,
		SurgeMultiplier: 2.0,
	}
}

// VolumeSurge buys when on-balance volume crosses above its moving average
// on a volume spike and exits when OBV crosses back under.
type VolumeSurge struct {
	base
	cfg VolumeSurgeConfig
}

// NewVolumeSurge validates the config and builds the variant.
func NewVolumeSurge(cfg VolumeSurgeConfig, settings config.Settings) (*VolumeSurge, error) {
	if err := config.ValidatePeriod("obv_period", cfg.OBVPeriod, 2); err != nil {
		return nil, err
	}

	if err := config.ValidatePositive("surge_multiplier", cfg.SurgeMultiplier); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("VolumeSurge(%d, %.1fx)", cfg.OBVPeriod, cfg.SurgeMultiplier)

	return &VolumeSurge{
		base: newBase(name, cfg.OBVPeriod+1, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits on OBV crossings of its own moving average.
func (s *VolumeSurge) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	closes := indicator.Closes(bars)
	volumes := indicator.Volumes(bars)
	obv := indicator.OBV(closes, volumes)
	obvAvg := indicator.SMA(obv, s.cfg.OBVPeriod)
	volAvg := indicator.SMA(volumes, s.cfg.OBVPeriod)

	signals := holdSignals(len(bars))
	inPosition := false

	for i := 1; i < len(bars); i++ {
		if math.IsNaN(obvAvg[i]) || math.IsNaN(obvAvg[i-1]) || math.IsNaN(volAvg[i]) {
			continue
		}

		crossedUp := obv[i] > obvAvg[i] && obv[i-1] <= obvAvg[i-1]
		crossedDown := obv[i] < obvAvg[i] && obv[i-1] >= obvAvg[i-1]
		surging := volumes[i] > volAvg[i]*s.cfg.SurgeMultiplier

		switch {
		case !inPosition && crossedUp && surging:
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && crossedDown:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}
