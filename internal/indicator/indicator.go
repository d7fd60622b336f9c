// Package indicator provides batch technical-indicator calculations over
// bar series. Every function returns a slice with the same length as its
// input; entries before an indicator's warmup window hold math.NaN().
// Functions are pure and deterministic, so a strategy can call them once per
// GenerateSignals pass and index the results alongside the bars.
package indicator

import (
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// Closes extracts the close prices of a bar series.
func Closes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.Close
	}

	return out
}

// Highs extracts the high prices of a bar series.
func Highs(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.High
	}

	return out
}

// Lows extracts the low prices of a bar series.
func Lows(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.Low
	}

	return out
}

// Volumes extracts the volumes of a bar series as floats.
func Volumes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = float64(bar.Volume)
	}

	return out
}

// nanSlice returns a slice of n NaNs.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}
