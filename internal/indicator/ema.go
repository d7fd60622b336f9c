package indicator

// EMA computes the exponential moving average of values over the given
// period. The value at index period-1 seeds the average with the SMA of the
// first period values; later entries apply the standard 2/(period+1)
// smoothing. Entries before index period-1 are NaN.
func EMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	var seed float64
	for _, v := range values[:period] {
		seed += v
	}

	seed /= float64(period)
	out[period-1] = seed

	multiplier := 2.0 / float64(period+1)
	prev := seed

	for i := period; i < len(values); i++ {
		prev = (values[i]-prev)*multiplier + prev
		out[i] = prev
	}

	return out
}
