package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TradeTestSuite struct {
	suite.Suite
}

func TestTradeSuite(t *testing.T) {
	suite.Run(t, new(TradeTestSuite))
}

func (suite *TradeTestSuite) TestIsWin() {
	win := Trade{PnL: 120.5}
	loss := Trade{PnL: -43.2}
	flat := Trade{PnL: 0}

	suite.True(win.IsWin())
	suite.False(loss.IsWin())
	// a break-even trade is not a win
	suite.False(flat.IsWin())
}

func (suite *TradeTestSuite) TestHoldingPeriod() {
	entry := time.Date(2023, 6, 15, 9, 31, 0, 0, time.UTC)
	trade := Trade{
		EntryTime:  entry,
		ExitTime:   entry.Add(42 * time.Minute),
		EntryPrice: 150.05,
		ExitPrice:  151.2,
		Quantity:   66.0,
	}

	suite.Equal(42*time.Minute, trade.HoldingPeriod())
}

func (suite *TradeTestSuite) TestForcedDefaultsToFalse() {
	trade := Trade{}
	suite.False(trade.Forced)
}
