package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestBands() {
	values := []float64{10, 20, 30}
	bands := ComputeBollingerBands(values, 3, 2.0)

	suite.True(math.IsNaN(bands.Middle[1]))
	suite.Equal(20.0, bands.Middle[2])

	// population stddev of {10,20,30} = sqrt(200/3)
	stdDev := math.Sqrt(200.0 / 3.0)
	suite.InDelta(20.0+2.0*stdDev, bands.Upper[2], 1e-9)
	suite.InDelta(20.0-2.0*stdDev, bands.Lower[2], 1e-9)
}

func (suite *BollingerBandsTestSuite) TestBandsConstantSeries() {
	values := []float64{5, 5, 5}
	bands := ComputeBollingerBands(values, 3, 2.0)

	suite.Equal(5.0, bands.Middle[2])
	suite.Equal(5.0, bands.Upper[2])
	suite.Equal(5.0, bands.Lower[2])
}

func (suite *BollingerBandsTestSuite) TestPercentB() {
	values := []float64{5, 5, 5, 5}
	values[3] = 5 // keep the window {5,5,5} constant at the last index too

	bands := ComputeBollingerBands(values, 3, 2.0)
	pb := bands.PercentB(values)

	suite.True(math.IsNaN(pb[1]))
	// zero-width bands pin %B to the midpoint
	suite.Equal(0.5, pb[3])
}

func (suite *BollingerBandsTestSuite) TestPercentBAboveUpperBand() {
	values := []float64{10, 20, 30}
	bands := ComputeBollingerBands(values, 3, 1.0)
	pb := bands.PercentB(values)

	// 30 is 10 above the mean but the stddev is only ~8.16, so the close
	// finishes outside the one-sigma band and %B exceeds 1
	suite.Greater(pb[2], 1.0)
}

func (suite *BollingerBandsTestSuite) TestWidth() {
	values := []float64{10, 20, 30}
	bands := ComputeBollingerBands(values, 3, 2.0)
	width := bands.Width()

	stdDev := math.Sqrt(200.0 / 3.0)
	suite.True(math.IsNaN(width[0]))
	suite.InDelta(4.0*stdDev/20.0, width[2], 1e-9)
}
