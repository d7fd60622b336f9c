package types

// PerformanceReport is the immutable summary of a single backtest run.
// All ratios are fractions, not percentages: a TotalReturn of 0.12 means
// the balance grew 12%, a MaxDrawdown of 0.2 means a 20% peak-to-trough
// decline. A report is only produced for a run that completed; partial
// reports do not exist.
type PerformanceReport struct {
	// Strategy is the parameterized name of the strategy that produced the run
	Strategy string `yaml:"strategy" json:"strategy"`
	// FinalBalance is the account value after the last bar, in account currency
	FinalBalance float64 `yaml:"final_balance" json:"final_balance"`
	// TotalReturn is FinalBalance/InitialBalance - 1
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// AnnualizedReturn scales TotalReturn to a one-year horizon
	AnnualizedReturn float64 `yaml:"annualized_return" json:"annualized_return"`
	// TotalTrades counts completed round trips, including a forced final close
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// WinRate is winning trades over total trades, 0 when no trades occurred
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// ProfitFactor is gross profit over gross loss across closed trades
	ProfitFactor float64 `yaml:"profit_factor" json:"profit_factor"`
	// SharpeRatio is the annualized mean/stdev of per-bar equity returns,
	// 0 when the equity curve never moves
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	// MaxDrawdown is the largest fractional decline from a running equity peak
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
}
