package backtest

import (
	"math"
	"time"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

var testStart = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

// barsFromCloses synthesizes a daily series around the closes: each bar opens
// at the prior close, so the fill price for a signal at index i is exactly
// closes[i].
func barsFromCloses(closes []float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}

		bars[i] = types.Bar{
			Time:   testStart.AddDate(0, 0, i),
			Open:   open,
			High:   math.Max(open, c) + 0.5,
			Low:    math.Min(open, c) - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

// holdsWith builds an all-Hold signal slice with the given overrides.
func holdsWith(n int, overrides map[int]types.Signal) []types.Signal {
	signals := make([]types.Signal, n)
	for i := range signals {
		signals[i] = types.SignalHold
	}

	for i, s := range overrides {
		signals[i] = s
	}

	return signals
}

// zeroCostOptions returns daily run options with no commission or slippage.
func zeroCostOptions(balance float64, name string) Options {
	return Options{
		InitialBalance: balance,
		Granularity:    types.GranularityDaily,
		Strategy:       name,
	}
}
