package strategy

import (
	"fmt"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// CandleReversalConfig parameterizes the engulfing-pattern variant.
type CandleReversalConfig struct {
	Lookback int `yaml:"lookback" json:"lookback"`
}

// DefaultCandleReversalConfig returns a 10-bar extremum window.
func DefaultCandleReversalConfig() CandleReversalConfig {
	return CandleReversalConfig{Lookback: 10}
}

// CandleReversal buys a bullish engulfing candle printed at the low of the
// recent window and exits on a bearish engulfing candle at the high.
type CandleReversal struct {
	base
	cfg CandleReversalConfig
}

// NewCandleReversal validates the config and builds the variant.
func NewCandleReversal(cfg CandleReversalConfig, settings config.Settings) (*CandleReversal, error) {
	if err := config.ValidatePeriod("lookback", cfg.Lookback, 2); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("CandleReversal(%d)", cfg.Lookback)

	return &CandleReversal{
		base: newBase(name, cfg.Lookback+2, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits on engulfing candles at window extremes.
func (s *CandleReversal) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	signals := holdSignals(len(bars))
	inPosition := false

	for i := s.cfg.Lookback + 1; i < len(bars); i++ {
		prev, cur := bars[i-1], bars[i]

		atLow := cur.Low <= windowLow(bars[i-s.cfg.Lookback:i])
		atHigh := cur.High >= windowHigh(bars[i-s.cfg.Lookback:i])

		switch {
		case !inPosition && atLow && bullishEngulfing(prev, cur):
			signals[i] = types.SignalBuy
			inPosition = true
		case inPosition && atHigh && bearishEngulfing(prev, cur):
			signals[i] = types.SignalSell
			inPosition = false
		}
	}

	return signals, nil
}

// bullishEngulfing reports whether cur is an up candle whose body swallows
// the body of the preceding down candle.
func bullishEngulfing(prev, cur types.Bar) bool {
	return prev.Close < prev.Open &&
		cur.Close > cur.Open &&
		cur.Open <= prev.Close &&
		cur.Close >= prev.Open
}

// bearishEngulfing is the mirror image of bullishEngulfing.
func bearishEngulfing(prev, cur types.Bar) bool {
	return prev.Close > prev.Open &&
		cur.Close < cur.Open &&
		cur.Open >= prev.Close &&
		cur.Close <= prev.Open
}

func windowLow(window []types.Bar) float64 {
	low := window[0].Low
	for _, b := range window[1:] {
		if b.Low < low {
			low = b.Low
		}
	}
	return low
}

func windowHigh(window []types.Bar) float64 {
	high := window[0].High
	for _, b := range window[1:] {
		if b.High > high {
			high = b.High
		}
	}
	return high
}
