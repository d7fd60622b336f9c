package strategy

import (
	"math"
	"math/rand"
	"time"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

var testStart = time.Date(2024, time.January, 2, 14, 30, 0, 0, time.UTC)

func dailySettings() config.Settings {
	return config.NewSettings(types.GranularityDaily)
}

func minuteSettings() config.Settings {
	return config.NewSettings(types.GranularityMinute)
}

// barsFromCloses synthesizes a daily series around the closes: each bar opens
// at the prior close with highs and lows hugging the body.
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

// flatBars synthesizes n bars that all close at the same price.
func flatBars(n int, price float64) []types.Bar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}

	return barsFromCloses(closes)
}

// signalIndexes returns the positions holding the given signal, in order.
func signalIndexes(signals []types.Signal, want types.Signal) []int {
	var out []int
	for i, s := range signals {
		if s == want {
			out = append(out, i)
		}
	}

	return out
}

// randomWalkBars synthesizes a seeded daily random walk with occasional
// volume surges so every variant has something to react to.
func randomWalkBars(n int, seed int64) []types.Bar {
	rng := rand.New(rand.NewSource(seed))
	bars := make([]types.Bar, n)
	price := 100.0

	for i := range bars {
		open := price
		close := price + rng.NormFloat64()*1.5
		if close < 5 {
			close = 5
		}

		volume := uint64(500 + rng.Intn(2000))
		if rng.Intn(10) == 0 {
			volume *= 5
		}

		bars[i] = types.Bar{
			Time:   testStart.AddDate(0, 0, i),
			Open:   open,
			High:   math.Max(open, close) + rng.Float64(),
			Low:    math.Min(open, close) - rng.Float64(),
			Close:  close,
			Volume: volume,
		}
		price = close
	}

	return bars
}
