package indicator

import (
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// TrueRange computes the per-bar true range: the largest of high-low,
// |high-previous close| and |low-previous close|. The first bar has no
// previous close, so its true range is simply high-low.
func TrueRange(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))

	for i, bar := range bars {
		tr := bar.High - bar.Low
		if i > 0 {
			prevClose := bars[i-1].Close
			if hc := abs(bar.High - prevClose); hc > tr {
				tr = hc
			}

			if lc := abs(bar.Low - prevClose); lc > tr {
				tr = lc
			}
		}

		out[i] = tr
	}

	return out
}

// ATR computes the Average True Range as a simple moving average of the true
// range over the given period. Entries before index period-1 are NaN.
func ATR(bars []types.Bar, period int) []float64 {
	return SMA(TrueRange(bars), period)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
