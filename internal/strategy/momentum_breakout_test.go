package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

type MomentumBreakoutTestSuite struct {
	suite.Suite
}

func TestMomentumBreakoutSuite(t *testing.T) {
	suite.Run(t, new(MomentumBreakoutTestSuite))
}

// surgeBars builds a quiet 99..101 range, a volume-backed breakout at
// index 5, and a volume-backed breakdown at index 7.
func (suite *MomentumBreakoutTestSuite) surgeBars() []types.Bar {
	bars := make([]types.Bar, 0, 8)
	for i := 0; i < 5; i++ {
		bars = append(bars, types.Bar{
			Time: testStart.AddDate(0, 0, i), Open: 100, High: 101, Low: 99, Close: 100, Volume: 100,
		})
	}

	bars = append(bars,
		types.Bar{Time: testStart.AddDate(0, 0, 5), Open: 100, High: 103, Low: 100, Close: 102, Volume: 200},
		types.Bar{Time: testStart.AddDate(0, 0, 6), Open: 102, High: 102.5, Low: 101, Close: 102, Volume: 100},
		types.Bar{Time: testStart.AddDate(0, 0, 7), Open: 102, High: 102, Low: 95, Close: 96, Volume: 250},
	)

	return bars
}

func (suite *MomentumBreakoutTestSuite) TestDefaultName() {
	s, err := NewMomentumBreakout(DefaultMomentumBreakoutConfig(), dailySettings())

	suite.Require().NoError(err)
	suite.Equal("MomentumBreakout(20, 1.5x vol)", s.Name())
	suite.Equal(21, s.MinBars())
}

func (suite *MomentumBreakoutTestSuite) TestRejectsShortPeriod() {
	cfg := MomentumBreakoutConfig{Period: 4, VolumeThreshold: 1.5}
	_, err := NewMomentumBreakout(cfg, dailySettings())

	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *MomentumBreakoutTestSuite) TestConfirmedRoundTrip() {
	cfg := MomentumBreakoutConfig{Period: 5, VolumeThreshold: 1.5}
	s, err := NewMomentumBreakout(cfg, dailySettings())
	suite.Require().NoError(err)

	signals, err := s.GenerateSignals(suite.surgeBars())

	suite.Require().NoError(err)
	suite.Equal([]int{5}, signalIndexes(signals, types.SignalBuy))
	suite.Equal([]int{7}, signalIndexes(signals, types.SignalSell))
}

func (suite *MomentumBreakoutTestSuite) TestBreakoutWithoutVolumeIsIgnored() {
	cfg := MomentumBreakoutConfig{Period: 5, VolumeThreshold: 1.5}
	s, err := NewMomentumBreakout(cfg, dailySettings())
	suite.Require().NoError(err)

	bars := suite.surgeBars()
	// the breakout bar trades only 1.2x the window average
	bars[5].Volume = 120
	signals, err := s.GenerateSignals(bars)

	suite.Require().NoError(err)
	suite.Empty(signalIndexes(signals, types.SignalBuy))
	suite.Empty(signalIndexes(signals, types.SignalSell))
}

func (suite *MomentumBreakoutTestSuite) TestInsufficientData() {
	cfg := MomentumBreakoutConfig{Period: 5, VolumeThreshold: 1.5}
	s, err := NewMomentumBreakout(cfg, dailySettings())
	suite.Require().NoError(err)

	_, err = s.GenerateSignals(suite.surgeBars()[:5])

	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}
