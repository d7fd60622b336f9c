package config

import (
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// DefaultCosts returns the cost model a granularity implies. Daily fills pay
// more commission and less slippage than minute fills, reflecting the thicker
// auction at the daily open.
func DefaultCosts(granularity types.Granularity) types.CostModel {
	if granularity == types.GranularityMinute {
		return types.CostModel{
			CommissionRate: 0.0005,
			SlippageRate:   0.001,
		}
	}

	return types.CostModel{
		CommissionRate: 0.001,
		SlippageRate:   0.0005,
	}
}
