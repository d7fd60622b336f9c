package backtest

import (
	"math"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// buildReport derives the summary metrics from a finished run. All ratios
// are fractions; the degenerate cases (no trades, flat equity) resolve to
// defined values instead of errors.
func buildReport(opts Options, finalBalance float64, equity []float64, trades []types.Trade) types.PerformanceReport {
	annualization := opts.Granularity.AnnualizationFactor(opts.BarsPerSession)
	returns := barReturns(equity)
	totalReturn := finalBalance/opts.InitialBalance - 1

	wins := 0

	for _, t := range trades {
		if t.IsWin() {
			wins++
		}
	}

	winRate := 0.0
	if len(trades) > 0 {
		winRate = float64(wins) / float64(len(trades))
	}

	return types.PerformanceReport{
		Strategy:         opts.Strategy,
		FinalBalance:     finalBalance,
		TotalReturn:      totalReturn,
		AnnualizedReturn: annualizedReturn(totalReturn, annualization, len(returns)),
		TotalTrades:      len(trades),
		WinRate:          winRate,
		ProfitFactor:     profitFactor(trades),
		SharpeRatio:      sharpeRatio(returns, annualization),
		MaxDrawdown:      maxDrawdown(equity),
	}
}

// barReturns converts an equity curve into per-bar fractional returns.
// Equity is always positive (prices are positive and the balance starts
// positive), so the divisions are safe.
func barReturns(equity []float64) []float64 {
	if len(equity) < 2 {
		return nil
	}

	returns := make([]float64, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		returns[i-1] = equity[i]/equity[i-1] - 1
	}

	return returns
}

// sharpeRatio annualizes the mean over the sample standard deviation of the
// per-bar returns. A curve that never varies has zero deviation and a
// defined Sharpe of 0, and fewer than two returns cannot produce a deviation
// at all.
func sharpeRatio(returns []float64, annualization float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	mu := mean(returns)

	sd := sampleStdev(returns, mu)
	if sd == 0 {
		return 0
	}

	return mu / sd * math.Sqrt(annualization)
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}

	return sum / float64(len(xs))
}

func sampleStdev(xs []float64, mu float64) float64 {
	variance := 0.0
	for _, x := range xs {
		variance += (x - mu) * (x - mu)
	}

	variance /= float64(len(xs) - 1)

	return math.Sqrt(variance)
}

// maxDrawdown returns the largest fractional decline from a running peak of
// the equity curve. A curve that never declines has a drawdown of 0.
func maxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}

	maxDecline := 0.0
	peak := equity[0]

	for _, value := range equity {
		if value > peak {
			peak = value
			continue
		}

		if decline := (peak - value) / peak; decline > maxDecline {
			maxDecline = decline
		}
	}

	return maxDecline
}

// profitFactor is gross profit over gross loss across closed trades. A run
// with gains and no losses is +Inf; a run with no gains is 0.
func profitFactor(trades []types.Trade) float64 {
	grossProfit, grossLoss := 0.0, 0.0

	for _, t := range trades {
		if t.PnL > 0 {
			grossProfit += t.PnL
		} else {
			grossLoss -= t.PnL
		}
	}

	if grossLoss == 0 {
		if grossProfit > 0 {
			return math.Inf(1)
		}

		return 0
	}

	return grossProfit / grossLoss
}

// annualizedReturn compounds a total return earned over periods bars up to a
// one-year horizon of annualization bars.
func annualizedReturn(totalReturn, annualization float64, periods int) float64 {
	if periods == 0 {
		return 0
	}

	return math.Pow(1+totalReturn, annualization/float64(periods)) - 1
}
