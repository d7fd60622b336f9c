package types

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

type GranularityTestSuite struct {
	suite.Suite
}

func TestGranularitySuite(t *testing.T) {
	suite.Run(t, new(GranularityTestSuite))
}

func (suite *GranularityTestSuite) TestParseGranularity() {
	g, err := ParseGranularity("daily")
	suite.NoError(err)
	suite.Equal(GranularityDaily, g)

	g, err = ParseGranularity("minute")
	suite.NoError(err)
	suite.Equal(GranularityMinute, g)
}

func (suite *GranularityTestSuite) TestParseGranularityUnknown() {
	_, err := ParseGranularity("hourly")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidGranularity))
	suite.Contains(err.Error(), "hourly")
}

func (suite *GranularityTestSuite) TestIsValid() {
	suite.True(GranularityDaily.IsValid())
	suite.True(GranularityMinute.IsValid())
	suite.False(Granularity("weekly").IsValid())
	suite.False(Granularity("").IsValid())
}

func (suite *GranularityTestSuite) TestAnnualizationFactorDaily() {
	suite.Equal(252.0, GranularityDaily.AnnualizationFactor(0))
	// barsPerSession is ignored for daily series
	suite.Equal(252.0, GranularityDaily.AnnualizationFactor(390))
}

func (suite *GranularityTestSuite) TestAnnualizationFactorMinute() {
	suite.Equal(252.0*390.0, GranularityMinute.AnnualizationFactor(0))
	suite.Equal(252.0*390.0, GranularityMinute.AnnualizationFactor(390))
	suite.Equal(252.0*60.0, GranularityMinute.AnnualizationFactor(60))
}
