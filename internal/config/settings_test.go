package config

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

type SettingsTestSuite struct {
	suite.Suite
}

func TestSettingsSuite(t *testing.T) {
	suite.Run(t, new(SettingsTestSuite))
}

func (suite *SettingsTestSuite) TestNewSettings() {
	settings := NewSettings(types.GranularityDaily)

	suite.Equal(types.GranularityDaily, settings.Granularity)
	suite.True(settings.Commission.IsNone())
	suite.True(settings.Slippage.IsNone())
}

func (suite *SettingsTestSuite) TestDefaultCostsDaily() {
	costs := DefaultCosts(types.GranularityDaily)

	suite.Equal(0.001, costs.CommissionRate)
	suite.Equal(0.0005, costs.SlippageRate)
}

func (suite *SettingsTestSuite) TestDefaultCostsMinute() {
	costs := DefaultCosts(types.GranularityMinute)

	suite.Equal(0.0005, costs.CommissionRate)
	suite.Equal(0.001, costs.SlippageRate)
}

func (suite *SettingsTestSuite) TestCostsWithoutOverrides() {
	settings := NewSettings(types.GranularityMinute)
	costs := settings.Costs()

	suite.Equal(DefaultCosts(types.GranularityMinute), costs)
}

func (suite *SettingsTestSuite) TestCostsWithOverrides() {
	settings := NewSettings(types.GranularityDaily)
	settings.Commission = optional.Some(0.0)
	settings.Slippage = optional.Some(0.002)

	costs := settings.Costs()
	suite.Equal(0.0, costs.CommissionRate)
	suite.Equal(0.002, costs.SlippageRate)
}

func (suite *SettingsTestSuite) TestCostsPartialOverride() {
	settings := NewSettings(types.GranularityDaily)
	settings.Slippage = optional.Some(0.0)

	costs := settings.Costs()
	// commission keeps the daily default
	suite.Equal(0.001, costs.CommissionRate)
	suite.Equal(0.0, costs.SlippageRate)
}

func (suite *SettingsTestSuite) TestValidate() {
	settings := NewSettings(types.GranularityDaily)
	suite.NoError(settings.Validate())
}

func (suite *SettingsTestSuite) TestValidateBadGranularity() {
	settings := Settings{Granularity: types.Granularity("weekly")}
	err := settings.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidGranularity))
}

func (suite *SettingsTestSuite) TestValidateNegativeCommission() {
	settings := NewSettings(types.GranularityDaily)
	settings.Commission = optional.Some(-0.001)

	err := settings.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *SettingsTestSuite) TestValidateSlippageAboveOne() {
	settings := NewSettings(types.GranularityMinute)
	settings.Slippage = optional.Some(1.5)

	err := settings.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}
