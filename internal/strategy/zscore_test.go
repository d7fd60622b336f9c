package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

type ZScoreTestSuite struct {
	suite.Suite
}

func TestZScoreSuite(t *testing.T) {
	suite.Run(t, new(ZScoreTestSuite))
}

func (suite *ZScoreTestSuite) TestDefaultName() {
	s, err := NewZScore(DefaultZScoreConfig(), dailySettings())

	suite.Require().NoError(err)
	suite.Equal("ZScore(20, 2.0σ/0.5σ)", s.Name())
	suite.Equal(21, s.MinBars())
}

func (suite *ZScoreTestSuite) TestRejectsExitAboveEntry() {
	cfg := ZScoreConfig{Lookback: 20, EntryThreshold: 1.0, ExitThreshold: 1.5}
	_, err := NewZScore(cfg, dailySettings())

	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidThreshold))
}

func (suite *ZScoreTestSuite) TestRejectsShortLookback() {
	cfg := ZScoreConfig{Lookback: 5, EntryThreshold: 2.0, ExitThreshold: 0.5}
	_, err := NewZScore(cfg, dailySettings())

	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *ZScoreTestSuite) TestCrashAndRecoveryRoundTrip() {
	cfg := ZScoreConfig{Lookback: 10, EntryThreshold: 2.0, ExitThreshold: 0.5}
	s, err := NewZScore(cfg, dailySettings())
	suite.Require().NoError(err)

	// ten bars oscillating around 100 put the trailing stdev near 0.82, so
	// the crash to 90 reads z = -12.2 and the bounce back reads z = +0.31
	closes := []float64{100, 101, 99, 100, 101, 99, 100, 101, 99, 100, 90, 100}
	signals, err := s.GenerateSignals(barsFromCloses(closes))

	suite.Require().NoError(err)
	suite.Equal([]int{10}, signalIndexes(signals, types.SignalBuy))
	suite.Equal([]int{11}, signalIndexes(signals, types.SignalSell))
}

func (suite *ZScoreTestSuite) TestConstantSeriesStaysOut() {
	cfg := ZScoreConfig{Lookback: 10, EntryThreshold: 2.0, ExitThreshold: 0.5}
	s, err := NewZScore(cfg, dailySettings())
	suite.Require().NoError(err)

	// zero variance windows produce no z-scores at all
	signals, err := s.GenerateSignals(flatBars(30, 100))

	suite.Require().NoError(err)
	suite.Empty(signalIndexes(signals, types.SignalBuy))
	suite.Empty(signalIndexes(signals, types.SignalSell))
}

func (suite *ZScoreTestSuite) TestInsufficientData() {
	s, err := NewZScore(DefaultZScoreConfig(), dailySettings())
	suite.Require().NoError(err)

	_, err = s.GenerateSignals(flatBars(20, 100))

	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}
