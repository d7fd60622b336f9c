package indicator

// SMA computes the simple moving average of values over the given period.
// Entries before index period-1 are NaN. A non-positive period or a series
// shorter than the period yields an all-NaN slice.
func SMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}

		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}

	return out
}

// RollingMax computes the highest value over the trailing period ending at
// each index. Entries before index period-1 are NaN.
func RollingMax(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		max := values[i-period+1]
		for _, v := range values[i-period+2 : i+1] {
			if v > max {
				max = v
			}
		}

		out[i] = max
	}

	return out
}

// RollingMin computes the lowest value over the trailing period ending at
// each index. Entries before index period-1 are NaN.
func RollingMin(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		min := values[i-period+1]
		for _, v := range values[i-period+2 : i+1] {
			if v < min {
				min = v
			}
		}

		out[i] = min
	}

	return out
}
