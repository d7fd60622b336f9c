package backtest

import (
	"github.com/halcyon-lab/halcyon-trading/internal/strategy"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// CalculatePerformance generates the strategy's signals over bars, replays
// them with the strategy's own cost model and returns the total return as a
// fraction. It is the one-call entry point for examples and parameter sweeps
// that only care about the end-to-end number.
func CalculatePerformance(s strategy.Strategy, bars []types.Bar, initialBalance float64) (float64, error) {
	result, err := runStrategy(s, bars, initialBalance, 0)
	if err != nil {
		return 0, err
	}

	return result.Report.TotalReturn, nil
}
