package types

import "time"

// Trade is one completed long round trip recorded by the backtest engine.
// Entry and exit prices are the actual fill prices after slippage; PnL is
// net of commissions on both legs.
type Trade struct {
	EntryTime  time.Time `yaml:"entry_time" csv:"entry_time"`
	ExitTime   time.Time `yaml:"exit_time" csv:"exit_time"`
	EntryPrice float64   `yaml:"entry_price" csv:"entry_price"`
	ExitPrice  float64   `yaml:"exit_price" csv:"exit_price"`
	// Quantity is the number of units held for the duration of the trade
	Quantity float64 `yaml:"quantity" csv:"quantity"`
	// PnL is the realized profit or loss in account currency
	PnL float64 `yaml:"pnl" csv:"pnl"`
	// Forced marks a trade closed by the end of the data rather than a signal
	Forced bool `yaml:"forced,omitempty" csv:"forced"`
}

// IsWin reports whether the trade realized a positive profit.
func (t Trade) IsWin() bool {
	return t.PnL > 0
}

// HoldingPeriod returns the elapsed time between entry and exit.
func (t Trade) HoldingPeriod() time.Duration {
	return t.ExitTime.Sub(t.EntryTime)
}
