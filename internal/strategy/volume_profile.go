package strategy

import (
	"fmt"
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// nodeProximity is how close the close must sit to a high-volume node, as a
// fraction of the node price, for it to count as trading at the node.
const nodeProximity = 0.003

// VolumeProfileConfig parameterizes the high-volume-node variant.
type VolumeProfileConfig struct {
	Lookback  int     `yaml:"lookback" json:"lookback"`
	Levels    int     `yaml:"levels" json:"levels"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// DefaultVolumeProfileConfig returns a 30-bar profile split into 10 price
// levels, with nodes holding 15% of the window's volume counted as heavy.
func DefaultVolumeProfileConfig() VolumeProfileConfig {
	return VolumeProfileConfig{
		Lookback:  30,
		Levels:    10,
		Threshold: 0.15,
	}
}

// VolumeProfile buckets traded volume by price over a trailing window and
// trades toward the high-volume nodes: buying near volume support and
// selling into volume resistance.
type VolumeProfile struct {
	base
	cfg VolumeProfileConfig
}

// NewVolumeProfile validates the config and builds the variant.
func NewVolumeProfile(cfg VolumeProfileConfig, settings config.Settings) (*VolumeProfile, error) {
	if err := config.ValidatePeriod("lookback", cfg.Lookback, 20); err != nil {
		return nil, err
	}

	if err := config.ValidatePeriod("levels", cfg.Levels, 5); err != nil {
		return nil, err
	}

	if err := config.ValidatePositive("threshold", cfg.Threshold); err != nil {
		return nil, err
	}

	if err := config.ValidateRange("threshold", cfg.Threshold, 0, 0.5); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("VolumeProfile(%d, %d levels)", cfg.Lookback, cfg.Levels)

	return &VolumeProfile{
		base: newBase(name, cfg.Lookback+1, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits near volume support and into volume resistance.
func (s *VolumeProfile) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	signals := holdSignals(len(bars))
	inPosition := false

	for i := s.cfg.Lookback; i < len(bars); i++ {
		nodes := s.heavyNodes(bars[i-s.cfg.Lookback : i])
		if len(nodes) == 0 {
			continue
		}

		// levels are picked relative to the previous close so the current
		// bar's move is judged against where price was coming from
		prevClose := bars[i-1].Close
		close := bars[i].Close
		support, hasSupport := highestNodeAtOrBelow(nodes, prevClose)
		resistance, hasResistance := lowestNodeAtOrAbove(nodes, prevClose)

		nearSupport := hasSupport && math.Abs(close-support) <= support*nodeProximity

		switch {
		case !inPosition && nearSupport:
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && hasResistance && close >= resistance:
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}

// heavyNodes builds the window's volume-by-price histogram and returns the
// center prices of buckets holding at least the threshold share of volume,
// sorted by price.
func (s *VolumeProfile) heavyNodes(window []types.Bar) []float64 {
	low, high := window[0].Low, window[0].High
	var total float64
	for _, b := range window {
		if b.Low < low {
			low = b.Low
		}
		if b.High > high {
			high = b.High
		}
		total += float64(b.Volume)
	}

	if total == 0 || high <= low {
		return nil
	}

	bucketSize := (high - low) / float64(s.cfg.Levels)
	buckets := make([]float64, s.cfg.Levels)

	// each bar's volume is spread evenly over the buckets its range spans
	for _, b := range window {
		first := bucketIndex(b.Low, low, bucketSize, s.cfg.Levels)
		last := bucketIndex(b.High, low, bucketSize, s.cfg.Levels)
		share := float64(b.Volume) / float64(last-first+1)
		for j := first; j <= last; j++ {
			buckets[j] += share
		}
	}

	var nodes []float64
	for j, v := range buckets {
		if v >= total*s.cfg.Threshold {
			nodes = append(nodes, low+(float64(j)+0.5)*bucketSize)
		}
	}
	return nodes
}

func bucketIndex(price, low, size float64, levels int) int {
	idx := int((price - low) / size)
	if idx < 0 {
		return 0
	}
	if idx >= levels {
		return levels - 1
	}
	return idx
}

func highestNodeAtOrBelow(nodes []float64, price float64) (float64, bool) {
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i] <= price {
			return nodes[i], true
		}
	}
	return 0, false
}

func lowestNodeAtOrAbove(nodes []float64, price float64) (float64, bool) {
	for _, n := range nodes {
		if n >= price {
			return n, true
		}
	}
	return 0, false
}
