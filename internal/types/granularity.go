package types

import (
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// Granularity identifies the sampling interval of a bar series. Every
// strategy is constructed against exactly one granularity; it scales the
// default cost model, the meaning of time-based parameters, and the
// annualization factor used by the Sharpe ratio.
type Granularity string

const (
	GranularityDaily  Granularity = "daily"
	GranularityMinute Granularity = "minute"
)

const (
	// TradingDaysPerYear is the annualization base for daily series.
	TradingDaysPerYear = 252
	// DefaultBarsPerSession is the regular-hours minute count (9:30-16:00).
	DefaultBarsPerSession = 390
)

// ParseGranularity converts a string into a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDaily:
		return GranularityDaily, nil
	case GranularityMinute:
		return GranularityMinute, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidGranularity,
			"unknown granularity %q (expected %q or %q)", s, GranularityDaily, GranularityMinute)
	}
}

// IsValid reports whether g is a defined granularity.
func (g Granularity) IsValid() bool {
	return g == GranularityDaily || g == GranularityMinute
}

func (g Granularity) String() string {
	return string(g)
}

// AnnualizationFactor returns the number of bars per year used to scale
// per-bar return statistics. barsPerSession only matters for minute series;
// a non-positive value falls back to DefaultBarsPerSession.
func (g Granularity) AnnualizationFactor(barsPerSession int) float64 {
	if g == GranularityMinute {
		if barsPerSession <= 0 {
			barsPerSession = DefaultBarsPerSession
		}

		return float64(TradingDaysPerYear * barsPerSession)
	}

	return float64(TradingDaysPerYear)
}
