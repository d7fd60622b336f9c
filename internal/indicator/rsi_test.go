package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestRSIAllGains() {
	values := []float64{100, 101, 102, 103, 104, 105}
	out := RSI(values, 3)

	suite.True(math.IsNaN(out[2]))
	// no losses means RSI saturates at 100
	suite.Equal(100.0, out[3])
	suite.Equal(100.0, out[4])
	suite.Equal(100.0, out[5])
}

func (suite *RSITestSuite) TestRSIAlternatingSeries() {
	values := []float64{100, 101, 100, 101, 100}
	out := RSI(values, 2)

	suite.True(math.IsNaN(out[0]))
	suite.True(math.IsNaN(out[1]))
	// first average: gain 0.5, loss 0.5
	suite.Equal(50.0, out[2])
	// smoothed: gain (0.5+1)/2=0.75, loss 0.25
	suite.Equal(75.0, out[3])
	// smoothed: gain 0.375, loss 0.625
	suite.InDelta(37.5, out[4], 1e-9)
}

func (suite *RSITestSuite) TestRSIInsufficientData() {
	// period+1 values are required for the first reading
	out := RSI([]float64{100, 101, 102}, 3)

	for _, v := range out {
		suite.True(math.IsNaN(v))
	}
}

func (suite *RSITestSuite) TestRSIStaysInBounds() {
	values := []float64{
		100, 102, 99, 104, 101, 103, 98, 97, 105, 108,
		106, 104, 109, 111, 107, 103, 101, 106, 110, 112,
	}
	out := RSI(values, 5)

	for i := 5; i < len(out); i++ {
		suite.GreaterOrEqual(out[i], 0.0)
		suite.LessOrEqual(out[i], 100.0)
	}
}
