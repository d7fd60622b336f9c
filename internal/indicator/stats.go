package indicator

import "math"

// Mean returns the arithmetic mean of values, or NaN for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// SampleStdDev returns the sample standard deviation (n-1 denominator) of
// values, or NaN when fewer than two values are given.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}

	mean := Mean(values)

	var sum float64
	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}

	return math.Sqrt(sum / float64(len(values)-1))
}

// ZScores computes, for each index, how many sample standard deviations the
// value sits from the mean of the preceding lookback values. The window
// excludes the current value. Entries before index lookback are NaN, as are
// entries whose window has no dispersion.
func ZScores(values []float64, lookback int) []float64 {
	out := nanSlice(len(values))
	if lookback < 2 || len(values) <= lookback {
		return out
	}

	for i := lookback; i < len(values); i++ {
		window := values[i-lookback : i]
		mean := Mean(window)
		stdDev := SampleStdDev(window)

		if stdDev < 1e-10 {
			continue
		}

		out[i] = (values[i] - mean) / stdDev
	}

	return out
}
