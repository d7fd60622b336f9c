package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

type BarTestSuite struct {
	suite.Suite
}

func TestBarSuite(t *testing.T) {
	suite.Run(t, new(BarTestSuite))
}

func (suite *BarTestSuite) validBar(t time.Time) Bar {
	return Bar{
		Time:   t,
		Open:   150.0,
		High:   155.0,
		Low:    148.0,
		Close:  152.5,
		Volume: 1000000,
	}
}

func (suite *BarTestSuite) TestValidBar() {
	bar := suite.validBar(time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC))
	suite.NoError(bar.Validate())
}

func (suite *BarTestSuite) TestBarDoji() {
	// Open == High == Low == Close is a legal bar
	bar := Bar{
		Time:   time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC),
		Open:   100.0,
		High:   100.0,
		Low:    100.0,
		Close:  100.0,
		Volume: 0,
	}
	suite.NoError(bar.Validate())
}

func (suite *BarTestSuite) TestBarLowAboveOpen() {
	bar := suite.validBar(time.Now())
	bar.Low = 151.0
	err := bar.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidBar))
}

func (suite *BarTestSuite) TestBarHighBelowClose() {
	bar := suite.validBar(time.Now())
	bar.High = 152.0
	err := bar.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidBar))
}

func (suite *BarTestSuite) TestBarNonPositivePrice() {
	bar := suite.validBar(time.Now())
	bar.Open = 0
	err := bar.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidBar))
	suite.Contains(err.Error(), "non-positive price")
}

func (suite *BarTestSuite) TestValidateSeriesEmpty() {
	suite.NoError(ValidateSeries(nil))
	suite.NoError(ValidateSeries([]Bar{}))
}

func (suite *BarTestSuite) TestValidateSeriesOrdered() {
	start := time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC)
	bars := []Bar{
		suite.validBar(start),
		suite.validBar(start.Add(time.Minute)),
		suite.validBar(start.Add(2 * time.Minute)),
	}
	suite.NoError(ValidateSeries(bars))
}

func (suite *BarTestSuite) TestValidateSeriesDuplicateTimestamp() {
	start := time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC)
	bars := []Bar{
		suite.validBar(start),
		suite.validBar(start),
	}
	err := ValidateSeries(bars)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnorderedSeries))
}

func (suite *BarTestSuite) TestValidateSeriesBackwardsTimestamp() {
	start := time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC)
	bars := []Bar{
		suite.validBar(start),
		suite.validBar(start.Add(time.Minute)),
		suite.validBar(start.Add(30 * time.Second)),
	}
	err := ValidateSeries(bars)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnorderedSeries))
	suite.Contains(err.Error(), "bar 2")
}

func (suite *BarTestSuite) TestValidateSeriesReportsBadBarIndex() {
	start := time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC)
	bad := suite.validBar(start.Add(time.Minute))
	bad.Low = 200.0
	bars := []Bar{suite.validBar(start), bad}

	err := ValidateSeries(bars)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidBar))
	suite.Contains(err.Error(), "bar 1 is invalid")
}
