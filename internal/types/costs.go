package types

// CostModel holds the fractional trading costs the backtest engine applies.
// A CommissionRate of 0.001 charges 0.1% of traded notional per fill; a
// SlippageRate of 0.0005 moves entry fills up and exit fills down by 0.05%.
type CostModel struct {
	CommissionRate float64 `yaml:"commission_rate" json:"commission_rate"`
	SlippageRate   float64 `yaml:"slippage_rate" json:"slippage_rate"`
}
