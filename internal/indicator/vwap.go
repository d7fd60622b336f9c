package indicator

import (
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// VWAP computes the volume-weighted average price over a trailing window of
// period bars, using the typical price (high+low+close)/3 for each bar.
// Entries before index period-1, and windows that traded no volume, are NaN.
func VWAP(bars []types.Bar, period int) []float64 {
	out := nanSlice(len(bars))
	if period <= 0 || len(bars) < period {
		return out
	}

	var priceVolume, volume float64

	for i, bar := range bars {
		typical := (bar.High + bar.Low + bar.Close) / 3.0
		priceVolume += typical * float64(bar.Volume)
		volume += float64(bar.Volume)

		if i >= period {
			old := bars[i-period]
			oldTypical := (old.High + old.Low + old.Close) / 3.0
			priceVolume -= oldTypical * float64(old.Volume)
			volume -= float64(old.Volume)
		}

		if i >= period-1 && volume > 0 {
			out[i] = priceVolume / volume
		}
	}

	return out
}
