package indicator

import "math"

// BollingerBands holds the three bands for one series.
type BollingerBands struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// ComputeBollingerBands computes period-length Bollinger Bands around the
// simple moving average, offset by stdDevMult population standard
// deviations. All three slices are NaN before index period-1.
func ComputeBollingerBands(values []float64, period int, stdDevMult float64) BollingerBands {
	bands := BollingerBands{
		Middle: SMA(values, period),
		Upper:  nanSlice(len(values)),
		Lower:  nanSlice(len(values)),
	}

	if period <= 0 || len(values) < period {
		return bands
	}

	for i := period - 1; i < len(values); i++ {
		mean := bands.Middle[i]

		var variance float64
		for _, v := range values[i-period+1 : i+1] {
			diff := v - mean
			variance += diff * diff
		}

		variance /= float64(period)
		stdDev := math.Sqrt(variance)

		bands.Upper[i] = mean + stdDevMult*stdDev
		bands.Lower[i] = mean - stdDevMult*stdDev
	}

	return bands
}

// PercentB computes where each value sits inside its Bollinger Bands:
// 0 at the lower band, 1 at the upper band. When the bands have zero width
// the value is 0.5.
func (b BollingerBands) PercentB(values []float64) []float64 {
	out := nanSlice(len(values))

	for i, v := range values {
		if math.IsNaN(b.Upper[i]) || math.IsNaN(b.Lower[i]) {
			continue
		}

		width := b.Upper[i] - b.Lower[i]
		if width == 0 {
			out[i] = 0.5
			continue
		}

		out[i] = (v - b.Lower[i]) / width
	}

	return out
}

// Width computes the band width as a fraction of the middle band:
// (upper - lower) / middle. NaN during warmup or when the middle band is zero.
func (b BollingerBands) Width() []float64 {
	out := nanSlice(len(b.Middle))

	for i := range b.Middle {
		if math.IsNaN(b.Middle[i]) || b.Middle[i] == 0 {
			continue
		}

		out[i] = (b.Upper[i] - b.Lower[i]) / b.Middle[i]
	}

	return out
}
