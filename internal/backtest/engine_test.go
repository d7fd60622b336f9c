package backtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) TestSingleRoundTripWithZeroCosts() {
	// the classic crossover shape: a Buy at index 1 fills at bar 2's open
	// (101) and the Sell at index 3 fills at bar 4's open (101), so the
	// round trip returns the account exactly to its starting balance
	bars := barsFromCloses([]float64{100, 101, 102, 101, 100})
	signals := holdsWith(5, map[int]types.Signal{
		1: types.SignalBuy,
		3: types.SignalSell,
	})

	result, err := Run(bars, signals, zeroCostOptions(10000, "Crossover(2)"))

	suite.Require().NoError(err)
	suite.Equal("Crossover(2)", result.Report.Strategy)
	suite.Equal(1, result.Report.TotalTrades)
	suite.InDelta(10000, result.Report.FinalBalance, 1e-9)
	suite.InDelta(0, result.Report.TotalReturn, 1e-9)
	suite.InDelta(0, result.Report.AnnualizedReturn, 1e-9)

	suite.Require().Len(result.Trades, 1)
	trade := result.Trades[0]
	suite.Equal(bars[2].Time, trade.EntryTime)
	suite.Equal(bars[4].Time, trade.ExitTime)
	suite.InDelta(101, trade.EntryPrice, 1e-9)
	suite.InDelta(101, trade.ExitPrice, 1e-9)
	suite.InDelta(10000.0/101.0, trade.Quantity, 1e-9)
	suite.InDelta(0, trade.PnL, 1e-9)
	suite.False(trade.Forced)

	// the open position is marked to market at bar 2's close
	suite.Require().Len(result.Equity, 5)
	suite.InDelta(10000, result.Equity[0], 1e-9)
	suite.InDelta(10000, result.Equity[1], 1e-9)
	suite.InDelta(10000.0/101.0*102.0, result.Equity[2], 1e-9)
	suite.InDelta(10000, result.Equity[3], 1e-9)
	suite.InDelta(10000, result.Equity[4], 1e-9)

	// the only drawdown is the slide from the marked peak back to flat
	suite.InDelta(1.0/102.0, result.Report.MaxDrawdown, 1e-9)
}

func (suite *EngineTestSuite) TestCommissionAndSlippageApplyToFills() {
	bars := barsFromCloses([]float64{100, 100, 110, 110})
	signals := holdsWith(4, map[int]types.Signal{
		0: types.SignalBuy,
		2: types.SignalSell,
	})
	opts := Options{
		InitialBalance: 10000,
		Costs:          types.CostModel{CommissionRate: 0.01, SlippageRate: 0.005},
		Granularity:    types.GranularityDaily,
		Strategy:       "Costly",
	}

	result, err := Run(bars, signals, opts)

	suite.Require().NoError(err)
	suite.Require().Len(result.Trades, 1)

	// entry lifts the open by slippage and sizes so notional plus commission
	// spends the whole balance; exit drops the open and nets commission out
	qty := 10000.0 / (100.5 * 1.01)
	proceeds := qty * 109.45 * 0.99

	trade := result.Trades[0]
	suite.InDelta(100.5, trade.EntryPrice, 1e-9)
	suite.InDelta(109.45, trade.ExitPrice, 1e-9)
	suite.InDelta(qty, trade.Quantity, 1e-9)
	suite.InDelta(proceeds-10000, trade.PnL, 1e-9)
	suite.True(trade.IsWin())

	suite.InDelta(proceeds, result.Report.FinalBalance, 1e-9)
	suite.InDelta(proceeds/10000-1, result.Report.TotalReturn, 1e-9)
	suite.InDelta(1, result.Report.WinRate, 1e-9)
	suite.True(math.IsInf(result.Report.ProfitFactor, 1))
}

func (suite *EngineTestSuite) TestFinalBarForceClosesWithoutSlippage() {
	bars := barsFromCloses([]float64{100, 100, 105})
	signals := holdsWith(3, map[int]types.Signal{0: types.SignalBuy})
	opts := Options{
		InitialBalance: 10000,
		Costs:          types.CostModel{CommissionRate: 0.01, SlippageRate: 0.02},
		Granularity:    types.GranularityDaily,
		Strategy:       "HoldToEnd",
	}

	result, err := Run(bars, signals, opts)

	suite.Require().NoError(err)
	suite.Require().Len(result.Trades, 1)

	trade := result.Trades[0]
	suite.True(trade.Forced)
	suite.Equal(bars[2].Time, trade.ExitTime)
	// the forced liquidation fills at the raw close; only the entry leg saw
	// slippage
	suite.Equal(105.0, trade.ExitPrice)
	suite.InDelta(100*1.02, trade.EntryPrice, 1e-9)

	qty := 10000.0 / (102.0 * 1.01)
	proceeds := qty * 105.0 * 0.99
	suite.InDelta(proceeds, result.Report.FinalBalance, 1e-9)
	suite.InDelta(proceeds, result.Equity[2], 1e-9)
	suite.Equal(1, result.Report.TotalTrades)
}

func (suite *EngineTestSuite) TestRepeatedAndContradictorySignalsAreNoOps() {
	bars := barsFromCloses([]float64{100, 100, 100, 100, 100, 100})
	signals := holdsWith(6, map[int]types.Signal{
		0: types.SignalSell,
		1: types.SignalBuy,
		2: types.SignalBuy,
		3: types.SignalSell,
		4: types.SignalSell,
	})

	result, err := Run(bars, signals, zeroCostOptions(10000, "Noisy"))

	suite.Require().NoError(err)
	suite.Equal(1, result.Report.TotalTrades)
	suite.InDelta(10000, result.Report.FinalBalance, 1e-9)

	suite.Require().Len(result.Trades, 1)
	suite.Equal(bars[2].Time, result.Trades[0].EntryTime)
	suite.Equal(bars[4].Time, result.Trades[0].ExitTime)
	suite.False(result.Trades[0].Forced)

	for i, value := range result.Equity {
		suite.InDeltaf(10000, value, 1e-9, "equity at bar %d", i)
	}
}

func (suite *EngineTestSuite) TestHoldOnlySeriesNeverTrades() {
	bars := barsFromCloses([]float64{100, 100, 100, 100, 100})
	signals := holdsWith(5, nil)

	result, err := Run(bars, signals, zeroCostOptions(10000, "Idle"))

	suite.Require().NoError(err)
	suite.Empty(result.Trades)
	suite.Equal(0, result.Report.TotalTrades)
	suite.InDelta(10000, result.Report.FinalBalance, 1e-9)
	suite.InDelta(0, result.Report.TotalReturn, 1e-9)
	suite.Equal(0.0, result.Report.WinRate)
	suite.Equal(0.0, result.Report.ProfitFactor)
	suite.Equal(0.0, result.Report.SharpeRatio)
	suite.Equal(0.0, result.Report.MaxDrawdown)
}

func (suite *EngineTestSuite) TestBuyOnLastBarNeverFills() {
	bars := barsFromCloses([]float64{100, 101})
	signals := holdsWith(2, map[int]types.Signal{1: types.SignalBuy})

	result, err := Run(bars, signals, zeroCostOptions(10000, "LateBuyer"))

	suite.Require().NoError(err)
	suite.Empty(result.Trades)
	suite.InDelta(10000, result.Report.FinalBalance, 1e-9)
}

func (suite *EngineTestSuite) TestRejectsMismatchedLengths() {
	bars := barsFromCloses([]float64{100, 101, 102})
	signals := holdsWith(2, nil)

	result, err := Run(bars, signals, zeroCostOptions(10000, "Mismatched"))

	suite.Require().Error(err)
	suite.Nil(result)
	suite.True(errors.HasCode(err, errors.ErrCodeMismatchedLength))
}

func (suite *EngineTestSuite) TestRejectsNonPositiveBalance() {
	bars := barsFromCloses([]float64{100, 101})
	signals := holdsWith(2, nil)

	for _, balance := range []float64{0, -100} {
		result, err := Run(bars, signals, zeroCostOptions(balance, "Broke"))

		suite.Require().Error(err)
		suite.Nil(result)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidBalance))
	}
}

func (suite *EngineTestSuite) TestRejectsSingleBar() {
	bars := barsFromCloses([]float64{100})
	signals := holdsWith(1, nil)

	result, err := Run(bars, signals, zeroCostOptions(10000, "TooShort"))

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Require().True(errors.IsInsufficientDataError(err))

	var insufficient *errors.InsufficientDataError
	suite.Require().True(errors.As(err, &insufficient))
	suite.Equal(2, insufficient.Required)
	suite.Equal(1, insufficient.Actual)
}

func (suite *EngineTestSuite) TestDeterministicAndInputPreserving() {
	bars := barsFromCloses([]float64{100, 101, 99, 103, 102, 104, 101})
	signals := holdsWith(7, map[int]types.Signal{
		0: types.SignalBuy,
		2: types.SignalSell,
		4: types.SignalBuy,
	})

	barsBefore := make([]types.Bar, len(bars))
	copy(barsBefore, bars)
	signalsBefore := make([]types.Signal, len(signals))
	copy(signalsBefore, signals)

	first, err := Run(bars, signals, zeroCostOptions(10000, "Replay"))
	suite.Require().NoError(err)

	second, err := Run(bars, signals, zeroCostOptions(10000, "Replay"))
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.Equal(barsBefore, bars)
	suite.Equal(signalsBefore, signals)

	// the open entry at the end is realized by the forced close
	suite.Equal(2, first.Report.TotalTrades)
	suite.True(first.Trades[1].Forced)
}
