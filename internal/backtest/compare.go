package backtest

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/moznion/go-optional"

	"github.com/halcyon-lab/halcyon-trading/internal/strategy"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// Outcome is one slot of a comparison batch: a full result or the error that
// stopped that strategy. Slots line up with the input strategy order.
type Outcome struct {
	Strategy string
	Result   *Result
	Err      error
}

// CompareOptions configure a comparison batch.
type CompareOptions struct {
	// InitialBalance is the starting balance for every run; must be positive.
	InitialBalance float64
	// BarsPerSession scales minute-series annualization; zero means the
	// regular-hours default.
	BarsPerSession int
	// Parallelism caps concurrent runs; zero or less runs every strategy at
	// once.
	Parallelism int
	// OnProgress, when set, is called after each strategy finishes with the
	// completed and total counts. Calls may come from different goroutines.
	OnProgress optional.Option[func(completed, total int)]
}

// Compare runs every strategy over one shared, read-only bar series and
// returns one outcome per strategy in input order. Each run owns its slot,
// so a failing strategy fills its own error without aborting the batch. A
// cancelled context abandons strategies that have not started with ctx.Err()
// in their slots; runs already in flight complete.
func Compare(ctx context.Context, strategies []strategy.Strategy, bars []types.Bar, opts CompareOptions) []Outcome {
	outcomes := make([]Outcome, len(strategies))

	limit := opts.Parallelism
	if limit <= 0 {
		limit = len(strategies)
	}

	var (
		wg        sync.WaitGroup
		completed atomic.Int64
		sem       = make(chan struct{}, limit)
	)

	for i := range strategies {
		outcomes[i].Strategy = strategies[i].Name()

		wg.Add(1)

		go func(slot int, s strategy.Strategy) {
			defer wg.Done()
			// A panicking strategy surfaces as its slot's error; the batch
			// must survive it.
			defer func() {
				if r := recover(); r != nil {
					outcomes[slot].Result = nil
					outcomes[slot].Err = errors.Newf(errors.ErrCodeBacktestFailed,
						"strategy %s panicked: %v", s.Name(), r)
				}
			}()

			select {
			case <-ctx.Done():
				outcomes[slot].Err = ctx.Err()

				return
			default:
			}

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				outcomes[slot].Err = ctx.Err()

				return
			}

			outcomes[slot].Result, outcomes[slot].Err = runStrategy(s, bars, opts.InitialBalance, opts.BarsPerSession)

			if opts.OnProgress.IsSome() {
				report := opts.OnProgress.Unwrap()
				report(int(completed.Add(1)), len(strategies))
			}
		}(i, strategies[i])
	}

	wg.Wait()

	return outcomes
}

// runStrategy generates the strategy's signals and replays them with the
// strategy's own cost model.
func runStrategy(s strategy.Strategy, bars []types.Bar, initialBalance float64, barsPerSession int) (*Result, error) {
	signals, err := s.GenerateSignals(bars)
	if err != nil {
		return nil, err
	}

	return Run(bars, signals, Options{
		InitialBalance: initialBalance,
		Costs:          s.Costs(),
		Granularity:    s.Granularity(),
		BarsPerSession: barsPerSession,
		Strategy:       s.Name(),
	})
}
