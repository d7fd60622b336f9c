// Package backtest replays a signal series over a bar series and produces
// realized trades, a per-bar equity curve and a performance report. The
// account model is deliberately small: at most one open long position, full
// balance per entry, no short side. Strategies stay pure signal generators;
// all money math lives here.
package backtest

import (
	"time"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// position is the engine's account state.
type position int

const (
	flat position = iota
	long
)

// minBars is the shortest series a run accepts: signals act at the next
// bar's open, so a single bar can never fill anything.
const minBars = 2

// Options configure a single engine run.
type Options struct {
	// InitialBalance is the starting account balance; must be positive.
	InitialBalance float64
	// Costs are the fractional commission and slippage applied to fills.
	Costs types.CostModel
	// Granularity selects the annualization factor for the Sharpe ratio and
	// the annualized return. An unset value annualizes as daily.
	Granularity types.Granularity
	// BarsPerSession is the minute-bar session length; zero or negative means
	// the regular-hours default. Ignored for daily series.
	BarsPerSession int
	// Strategy is the display name stamped into the report.
	Strategy string
}

// Result bundles everything one run produces. Report is the immutable
// summary; Trades and Equity expose the underlying trade log and the
// marked-to-market equity curve for ledgers and tests.
type Result struct {
	Report types.PerformanceReport
	Trades []types.Trade
	Equity []float64
}

// entryState remembers the open leg while the engine is long. cost is the
// cash consumed at entry, commission included, so PnL nets both legs.
type entryState struct {
	time time.Time
	fill float64
	cost float64
}

// Run replays signals over bars. signals[i] acts at bars[i+1].Open: a Buy
// while flat fills at open*(1+slippage) and spends the whole balance
// (commission charged on notional), a Sell while long fills at
// open*(1-slippage) with proceeds netted of commission, and every other
// (state, signal) pair is a no-op, so repeated or contradictory signals can
// never double exposure. A position still open after the last bar is
// force-closed at that bar's close with commission but no slippage, so every
// run ends with a realized balance.
func Run(bars []types.Bar, signals []types.Signal, opts Options) (*Result, error) {
	if opts.InitialBalance <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidBalance,
			"initial balance must be positive, got %f", opts.InitialBalance)
	}

	if len(bars) != len(signals) {
		return nil, errors.Newf(errors.ErrCodeMismatchedLength,
			"got %d bars but %d signals", len(bars), len(signals))
	}

	if len(bars) < minBars {
		return nil, errors.NewInsufficientDataErrorf(minBars, len(bars), opts.Strategy,
			"a backtest needs at least %d bars, got %d", minBars, len(bars))
	}

	var (
		cash   = opts.InitialBalance
		qty    float64
		pos    = flat
		entry  entryState
		trades []types.Trade
		equity = make([]float64, len(bars))
	)

	equity[0] = cash

	for i := 1; i < len(bars); i++ {
		switch {
		case pos == flat && signals[i-1] == types.SignalBuy:
			fill := bars[i].Open * (1 + opts.Costs.SlippageRate)
			qty = cash / (fill * (1 + opts.Costs.CommissionRate))
			entry = entryState{time: bars[i].Time, fill: fill, cost: cash}
			cash = 0
			pos = long

		case pos == long && signals[i-1] == types.SignalSell:
			fill := bars[i].Open * (1 - opts.Costs.SlippageRate)
			proceeds := qty * fill * (1 - opts.Costs.CommissionRate)
			trades = append(trades, types.Trade{
				EntryTime:  entry.time,
				ExitTime:   bars[i].Time,
				EntryPrice: entry.fill,
				ExitPrice:  fill,
				Quantity:   qty,
				PnL:        proceeds - entry.cost,
			})
			cash += proceeds
			qty = 0
			pos = flat
		}

		equity[i] = cash + qty*bars[i].Close
	}

	if pos == long {
		last := bars[len(bars)-1]
		proceeds := qty * last.Close * (1 - opts.Costs.CommissionRate)
		trades = append(trades, types.Trade{
			EntryTime:  entry.time,
			ExitTime:   last.Time,
			EntryPrice: entry.fill,
			ExitPrice:  last.Close,
			Quantity:   qty,
			PnL:        proceeds - entry.cost,
			Forced:     true,
		})
		cash += proceeds
		equity[len(bars)-1] = cash
	}

	return &Result{
		Report: buildReport(opts, cash, equity, trades),
		Trades: trades,
		Equity: equity,
	}, nil
}
