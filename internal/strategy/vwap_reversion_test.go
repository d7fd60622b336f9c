package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

type VWAPReversionTestSuite struct {
	suite.Suite
}

func TestVWAPReversionSuite(t *testing.T) {
	suite.Run(t, new(VWAPReversionTestSuite))
}

// pinnedBars builds bars whose typical price equals the close so the rolling
// VWAP is an exact average of closes.
func (suite *VWAPReversionTestSuite) pinnedBars(closes []float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{
			Time:   testStart.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 100,
		}
	}

	return bars
}

func (suite *VWAPReversionTestSuite) TestDefaultName() {
	s, err := NewVWAPReversion(DefaultVWAPReversionConfig(), minuteSettings())

	suite.Require().NoError(err)
	suite.Equal("VWAPReversion(20, 1.00%)", s.Name())
	suite.Equal(20, s.MinBars())
}

func (suite *VWAPReversionTestSuite) TestRejectsNonPositiveDeviation() {
	cfg := VWAPReversionConfig{Lookback: 20, Deviation: 0}
	_, err := NewVWAPReversion(cfg, minuteSettings())

	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *VWAPReversionTestSuite) TestDeviationRoundTrip() {
	cfg := VWAPReversionConfig{Lookback: 2, Deviation: 0.01}
	s, err := NewVWAPReversion(cfg, minuteSettings())
	suite.Require().NoError(err)

	// the drop to 97 sits 1.52% under the 2-bar VWAP, the recovery to 100
	// sits 1.52% over it
	signals, err := s.GenerateSignals(suite.pinnedBars([]float64{100, 100, 97, 100}))

	suite.Require().NoError(err)
	suite.Equal([]int{2}, signalIndexes(signals, types.SignalBuy))
	suite.Equal([]int{3}, signalIndexes(signals, types.SignalSell))
}

func (suite *VWAPReversionTestSuite) TestSmallDeviationsStayOut() {
	cfg := VWAPReversionConfig{Lookback: 2, Deviation: 0.05}
	s, err := NewVWAPReversion(cfg, minuteSettings())
	suite.Require().NoError(err)

	signals, err := s.GenerateSignals(suite.pinnedBars([]float64{100, 100, 97, 100}))

	suite.Require().NoError(err)
	suite.Empty(signalIndexes(signals, types.SignalBuy))
	suite.Empty(signalIndexes(signals, types.SignalSell))
}

func (suite *VWAPReversionTestSuite) TestInsufficientData() {
	s, err := NewVWAPReversion(DefaultVWAPReversionConfig(), minuteSettings())
	suite.Require().NoError(err)

	_, err = s.GenerateSignals(suite.pinnedBars([]float64{100, 100}))

	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}
