package strategy

import (
	"fmt"
	"sort"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// Trading modes for the support/resistance variant.
const (
	SupportResistanceBounces   = "bounces"
	SupportResistanceBreakouts = "breakouts"
)

// SupportResistanceConfig parameterizes the pivot-level variant.
type SupportResistanceConfig struct {
	Lookback   int     `yaml:"lookback" json:"lookback"`
	PivotWidth int     `yaml:"pivot_width" json:"pivot_width"`
	MinTouches int     `yaml:"min_touches" json:"min_touches"`
	Zone       float64 `yaml:"zone" json:"zone"`
	Mode       string  `yaml:"mode" json:"mode"`
}

// DefaultSupportResistanceConfig returns a 30-bar window with 2-bar pivots,
// a 0.5% zone, and bounce trading.
func DefaultSupportResistanceConfig() SupportResistanceConfig {
	return SupportResistanceConfig{
		Lookback:   30,
		PivotWidth: 2,
		MinTouches: 2,
		Zone:       0.005,
		Mode:       SupportResistanceBounces,
	}
}

// SupportResistance clusters pivot highs and lows from a trailing window
// into price levels and trades bounces off them or breaks through them.
type SupportResistance struct {
	base
	cfg SupportResistanceConfig
}

// NewSupportResistance validates the config and builds the variant.
func NewSupportResistance(cfg SupportResistanceConfig, settings config.Settings) (*SupportResistance, error) {
	if err := config.ValidatePeriod("lookback", cfg.Lookback, 10); err != nil {
		return nil, err
	}

	if err := config.ValidatePeriod("pivot_width", cfg.PivotWidth, 1); err != nil {
		return nil, err
	}

	if err := config.ValidatePeriod("min_touches", cfg.MinTouches, 2); err != nil {
		return nil, err
	}

	if err := config.ValidatePositive("zone", cfg.Zone); err != nil {
		return nil, err
	}

	if err := config.ValidateRange("zone", cfg.Zone, 0, 0.05); err != nil {
		return nil, err
	}

	if cfg.Mode != SupportResistanceBounces && cfg.Mode != SupportResistanceBreakouts {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter,
			"mode must be %q or %q, got %q", SupportResistanceBounces, SupportResistanceBreakouts, cfg.Mode)
	}

	name := fmt.Sprintf("SupportResistance(%d, %s)", cfg.Lookback, cfg.Mode)

	return &SupportResistance{
		base: newBase(name, cfg.Lookback+1, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals trades the configured mode against clustered pivot levels.
func (s *SupportResistance) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	signals := holdSignals(len(bars))
	inPosition := false

	for i := s.cfg.Lookback; i < len(bars); i++ {
		supports, resistances := s.levels(bars[i-s.cfg.Lookback : i])

		prevClose := bars[i-1].Close
		close := bars[i].Close

		var buy, sell bool
		if s.cfg.Mode == SupportResistanceBounces {
			buy = !inPosition && s.anyInZone(supports, prevClose) && close > prevClose
			sell = inPosition && s.anyInZone(resistances, close)
		} else {
			if r, ok := lowestAtOrAbove(resistances, prevClose); ok {
				buy = !inPosition && close > r*(1+s.cfg.Zone/2)
			}
			if l, ok := highestAtOrBelow(supports, prevClose); ok {
				sell = inPosition && close < l*(1-s.cfg.Zone/2)
			}
		}

		switch {
		case buy:
			signals[i] = types.SignalBuy
			inPosition = true
		case sell:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}

type priceLevel struct {
	price   float64
	touches int
}

// levels extracts pivot highs and lows from the window and clusters each
// set into levels, keeping only those touched enough times.
func (s *SupportResistance) levels(window []types.Bar) (supports, resistances []priceLevel) {
	var pivotLows, pivotHighs []float64

	for j := s.cfg.PivotWidth; j < len(window)-s.cfg.PivotWidth; j++ {
		isHigh, isLow := true, true
		for k := j - s.cfg.PivotWidth; k <= j+s.cfg.PivotWidth; k++ {
			if k == j {
				continue
			}
			if window[k].High >= window[j].High {
				isHigh = false
			}
			if window[k].Low <= window[j].Low {
				isLow = false
			}
		}
		if isHigh {
			pivotHighs = append(pivotHighs, window[j].High)
		}
		if isLow {
			pivotLows = append(pivotLows, window[j].Low)
		}
	}

	supports = s.cluster(pivotLows)
	resistances = s.cluster(pivotHighs)
	return supports, resistances
}

// cluster folds sorted pivot prices into levels, merging prices within the
// zone of the running cluster mean. Output stays sorted by price.
func (s *SupportResistance) cluster(prices []float64) []priceLevel {
	sort.Float64s(prices)

	var all []priceLevel
	for _, p := range prices {
		if n := len(all); n > 0 && p-all[n-1].price <= all[n-1].price*s.cfg.Zone {
			l := &all[n-1]
			l.price = (l.price*float64(l.touches) + p) / float64(l.touches+1)
			l.touches++
			continue
		}
		all = append(all, priceLevel{price: p, touches: 1})
	}

	var kept []priceLevel
	for _, l := range all {
		if l.touches >= s.cfg.MinTouches {
			kept = append(kept, l)
		}
	}
	return kept
}

func (s *SupportResistance) anyInZone(levels []priceLevel, price float64) bool {
	for _, l := range levels {
		diff := price - l.price
		if diff < 0 {
			diff = -diff
		}
		if diff <= l.price*s.cfg.Zone {
			return true
		}
	}
	return false
}

func lowestAtOrAbove(levels []priceLevel, price float64) (float64, bool) {
	for _, l := range levels {
		if l.price >= price {
			return l.price, true
		}
	}
	return 0, false
}

func highestAtOrBelow(levels []priceLevel, price float64) (float64, bool) {
	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i].price <= price {
			return levels[i].price, true
		}
	}
	return 0, false
}
