package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// PropertiesTestSuite checks the contracts every variant honors regardless
// of its trading rule.
type PropertiesTestSuite struct {
	suite.Suite

	bars       []types.Bar
	strategies map[Kind]Strategy
}

func TestPropertiesSuite(t *testing.T) {
	suite.Run(t, new(PropertiesTestSuite))
}

func (suite *PropertiesTestSuite) SetupTest() {
	suite.bars = randomWalkBars(400, 42)
	suite.strategies = make(map[Kind]Strategy)

	reg := DefaultRegistry()
	for _, kind := range reg.Kinds() {
		s, err := reg.Create(kind, nil, dailySettings())
		suite.Require().NoError(err, "kind %s", kind)
		suite.strategies[kind] = s
	}
}

func (suite *PropertiesTestSuite) TestOneSignalPerBar() {
	for kind, s := range suite.strategies {
		signals, err := s.GenerateSignals(suite.bars)

		suite.Require().NoError(err, "kind %s", kind)
		suite.Require().Len(signals, len(suite.bars), "kind %s", kind)

		for i, sig := range signals {
			suite.Contains(
				[]types.Signal{types.SignalBuy, types.SignalSell, types.SignalHold},
				sig, "kind %s index %d", kind, i,
			)
		}
	}
}

func (suite *PropertiesTestSuite) TestDeterministic() {
	for kind, s := range suite.strategies {
		first, err := s.GenerateSignals(suite.bars)
		suite.Require().NoError(err, "kind %s", kind)

		second, err := s.GenerateSignals(suite.bars)
		suite.Require().NoError(err, "kind %s", kind)

		suite.Equal(first, second, "kind %s", kind)
	}
}

func (suite *PropertiesTestSuite) TestSignalsDependOnlyOnPastBars() {
	const prefix = 300

	for kind, s := range suite.strategies {
		full, err := s.GenerateSignals(suite.bars)
		suite.Require().NoError(err, "kind %s", kind)

		head, err := s.GenerateSignals(suite.bars[:prefix])
		suite.Require().NoError(err, "kind %s", kind)

		suite.Equal(full[:prefix], head, "kind %s", kind)
	}
}

func (suite *PropertiesTestSuite) TestBuysAndSellsAlternate() {
	for kind, s := range suite.strategies {
		signals, err := s.GenerateSignals(suite.bars)
		suite.Require().NoError(err, "kind %s", kind)

		expectBuy := true
		for i, sig := range signals {
			if sig == types.SignalHold {
				continue
			}

			if expectBuy {
				suite.Equal(types.SignalBuy, sig, "kind %s index %d", kind, i)
			} else {
				suite.Equal(types.SignalSell, sig, "kind %s index %d", kind, i)
			}
			expectBuy = !expectBuy
		}
	}
}

func (suite *PropertiesTestSuite) TestShortSeriesReturnsInsufficientData() {
	for kind, s := range suite.strategies {
		_, err := s.GenerateSignals(suite.bars[:s.MinBars()-1])

		suite.Require().Error(err, "kind %s", kind)
		suite.True(errors.IsInsufficientDataError(err), "kind %s", kind)

		var dataErr *errors.InsufficientDataError
		suite.Require().True(errors.As(err, &dataErr), "kind %s", kind)
		suite.Equal(s.MinBars(), dataErr.Required, "kind %s", kind)
		suite.Equal(s.MinBars()-1, dataErr.Actual, "kind %s", kind)
	}
}

func (suite *PropertiesTestSuite) TestInputBarsAreNotMutated() {
	pristine := randomWalkBars(400, 42)

	for kind, s := range suite.strategies {
		_, err := s.GenerateSignals(suite.bars)

		suite.Require().NoError(err, "kind %s", kind)
		suite.Equal(pristine, suite.bars, "kind %s", kind)
	}
}
