package indicator

import "math"

// MACDResult holds the MACD line, its signal line and the histogram.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// ComputeMACD computes the Moving Average Convergence Divergence of values.
// The MACD line is EMA(fast) - EMA(slow); the signal line is an EMA of the
// MACD line over signalPeriod, seeded with an SMA like every other EMA here.
// The histogram is their difference. The earliest defined histogram entry is
// at index slowPeriod+signalPeriod-2.
func ComputeMACD(values []float64, fastPeriod, slowPeriod, signalPeriod int) MACDResult {
	n := len(values)
	result := MACDResult{
		Line:      nanSlice(n),
		Signal:    nanSlice(n),
		Histogram: nanSlice(n),
	}

	if fastPeriod <= 0 || slowPeriod <= fastPeriod || signalPeriod <= 0 || n < slowPeriod+signalPeriod-1 {
		return result
	}

	fast := EMA(values, fastPeriod)
	slow := EMA(values, slowPeriod)

	for i := slowPeriod - 1; i < n; i++ {
		result.Line[i] = fast[i] - slow[i]
	}

	// Signal line: EMA over the defined region of the MACD line.
	defined := result.Line[slowPeriod-1:]
	signal := EMA(defined, signalPeriod)

	for i, v := range signal {
		if !math.IsNaN(v) {
			result.Signal[slowPeriod-1+i] = v
			result.Histogram[slowPeriod-1+i] = result.Line[slowPeriod-1+i] - v
		}
	}

	return result
}
