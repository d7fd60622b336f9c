package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

type VolatilityBreakoutTestSuite struct {
	suite.Suite
}

func TestVolatilityBreakoutSuite(t *testing.T) {
	suite.Run(t, new(VolatilityBreakoutTestSuite))
}

// contractionBars shrinks the bar ranges so ATR(5) falls on two consecutive
// bars, arming the 98..102 channel at index 6; index 7 breaks out above it.
// A second contraction re-arms at index 10 and index 11 breaks down.
func (suite *VolatilityBreakoutTestSuite) contractionBars() []types.Bar {
	spec := []struct{ o, h, l, c float64 }{
		{100, 102, 98, 100},
		{100, 102, 98, 100},
		{100, 102, 98, 100},
		{100, 102, 98, 100},
		{100, 102, 98, 100},
		{100, 101.5, 98.5, 100},
		{100, 101, 99, 100},
		{100, 103.5, 99.5, 103},
		{103, 105, 101, 103},
		{103, 104.5, 101.5, 103},
		{103, 104, 102, 103},
		{103, 103, 95, 95},
	}

	bars := make([]types.Bar, len(spec))
	for i, b := range spec {
		bars[i] = types.Bar{
			Time:   testStart.AddDate(0, 0, i),
			Open:   b.o,
			High:   b.h,
			Low:    b.l,
			Close:  b.c,
			Volume: 1000,
		}
	}

	return bars
}

func (suite *VolatilityBreakoutTestSuite) TestDefaultName() {
	s, err := NewVolatilityBreakout(DefaultVolatilityBreakoutConfig(), dailySettings())

	suite.Require().NoError(err)
	suite.Equal("VolatilityBreakout(14, 3 bars, 1.5x)", s.Name())
	suite.Equal(18, s.MinBars())
}

func (suite *VolatilityBreakoutTestSuite) TestRejectsContractionNotBelowLookback() {
	cfg := VolatilityBreakoutConfig{Lookback: 5, ContractionBars: 5, RangeMultiplier: 1.5}
	_, err := NewVolatilityBreakout(cfg, dailySettings())

	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *VolatilityBreakoutTestSuite) TestRejectsMultiplierBelowOne() {
	cfg := VolatilityBreakoutConfig{Lookback: 14, ContractionBars: 3, RangeMultiplier: 0.5}
	_, err := NewVolatilityBreakout(cfg, dailySettings())

	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidThreshold))
}

func (suite *VolatilityBreakoutTestSuite) TestArmedChannelRoundTrip() {
	cfg := VolatilityBreakoutConfig{Lookback: 5, ContractionBars: 2, RangeMultiplier: 1.0}
	s, err := NewVolatilityBreakout(cfg, dailySettings())
	suite.Require().NoError(err)

	signals, err := s.GenerateSignals(suite.contractionBars())

	suite.Require().NoError(err)
	suite.Equal([]int{7}, signalIndexes(signals, types.SignalBuy))
	suite.Equal([]int{11}, signalIndexes(signals, types.SignalSell))
}

func (suite *VolatilityBreakoutTestSuite) TestSteadyVolatilityNeverArms() {
	cfg := VolatilityBreakoutConfig{Lookback: 5, ContractionBars: 2, RangeMultiplier: 1.0}
	s, err := NewVolatilityBreakout(cfg, dailySettings())
	suite.Require().NoError(err)

	// constant ranges never contract, so the breakout at the end is ignored
	bars := suite.contractionBars()[:5]
	for i := 5; i < 10; i++ {
		bars = append(bars, types.Bar{
			Time: testStart.AddDate(0, 0, i), Open: 100, High: 102, Low: 98, Close: 100, Volume: 1000,
		})
	}
	bars = append(bars, types.Bar{
		Time: testStart.AddDate(0, 0, 10), Open: 100, High: 110, Low: 100, Close: 109, Volume: 1000,
	})

	signals, err := s.GenerateSignals(bars)

	suite.Require().NoError(err)
	suite.Empty(signalIndexes(signals, types.SignalBuy))
	suite.Empty(signalIndexes(signals, types.SignalSell))
}

func (suite *VolatilityBreakoutTestSuite) TestInsufficientData() {
	cfg := VolatilityBreakoutConfig{Lookback: 5, ContractionBars: 2, RangeMultiplier: 1.0}
	s, err := NewVolatilityBreakout(cfg, dailySettings())
	suite.Require().NoError(err)

	_, err = s.GenerateSignals(suite.contractionBars()[:7])

	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}
