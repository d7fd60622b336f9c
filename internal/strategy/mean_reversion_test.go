package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

type MeanReversionTestSuite struct {
	suite.Suite
}

func TestMeanReversionSuite(t *testing.T) {
	suite.Run(t, new(MeanReversionTestSuite))
}

func (suite *MeanReversionTestSuite) TestDefaultName() {
	s, err := NewMeanReversion(DefaultMeanReversionConfig(), dailySettings())

	suite.Require().NoError(err)
	suite.Equal("MeanReversion(20, 2.0σ)", s.Name())
	suite.Equal(20, s.MinBars())
}

func (suite *MeanReversionTestSuite) TestRejectsMultiplierOutOfRange() {
	cfg := MeanReversionConfig{Period: 20, Multiplier: 4, Oversold: 0.2, Overbought: 0.8}
	_, err := NewMeanReversion(cfg, dailySettings())

	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidRange))
}

func (suite *MeanReversionTestSuite) TestRejectsOversoldAboveHalf() {
	cfg := MeanReversionConfig{Period: 20, Multiplier: 2, Oversold: 0.6, Overbought: 0.8}
	_, err := NewMeanReversion(cfg, dailySettings())

	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidRange))
}

func (suite *MeanReversionTestSuite) TestPercentBRoundTrip() {
	cfg := MeanReversionConfig{Period: 2, Multiplier: 1, Oversold: 0.2, Overbought: 0.8}
	s, err := NewMeanReversion(cfg, dailySettings())
	suite.Require().NoError(err)

	// with a 2-bar window at 1 standard deviation, a falling pair pins %B
	// to 0 and a rising pair pins it to 1
	bars := barsFromCloses([]float64{100, 98, 99, 101})
	signals, err := s.GenerateSignals(bars)

	suite.Require().NoError(err)
	suite.Equal([]int{1}, signalIndexes(signals, types.SignalBuy))
	suite.Equal([]int{2}, signalIndexes(signals, types.SignalSell))
}

func (suite *MeanReversionTestSuite) TestConstantSeriesStaysOut() {
	cfg := MeanReversionConfig{Period: 2, Multiplier: 1, Oversold: 0.2, Overbought: 0.8}
	s, err := NewMeanReversion(cfg, dailySettings())
	suite.Require().NoError(err)

	// zero-width bands read %B as 0.5, between both thresholds
	signals, err := s.GenerateSignals(flatBars(10, 100))

	suite.Require().NoError(err)
	suite.Empty(signalIndexes(signals, types.SignalBuy))
	suite.Empty(signalIndexes(signals, types.SignalSell))
}

func (suite *MeanReversionTestSuite) TestInsufficientData() {
	s, err := NewMeanReversion(DefaultMeanReversionConfig(), dailySettings())
	suite.Require().NoError(err)

	_, err = s.GenerateSignals(flatBars(19, 100))

	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}
