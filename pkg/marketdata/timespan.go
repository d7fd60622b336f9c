// Package marketdata downloads historical OHLCV datasets from market data
// vendors and stores them as CSV or Parquet files the loader can feed
// straight into a backtest.
package marketdata

import (
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// Timespan is the bar interval of a download, in vendor-neutral notation.
// Only the two intervals the backtest core understands are supported; each
// maps 1:1 onto a granularity.
type Timespan string

const (
	TimespanOneMinute Timespan = "1m"
	TimespanOneDay    Timespan = "1d"
)

// ParseTimespan converts an interval string into a Timespan.
func ParseTimespan(s string) (Timespan, error) {
	switch Timespan(s) {
	case TimespanOneMinute:
		return TimespanOneMinute, nil
	case TimespanOneDay:
		return TimespanOneDay, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidTimespan,
			"unsupported interval %q (expected %q or %q)", s, TimespanOneMinute, TimespanOneDay)
	}
}

// Granularity returns the bar granularity this timespan produces.
func (t Timespan) Granularity() types.Granularity {
	if t == TimespanOneMinute {
		return types.GranularityMinute
	}

	return types.GranularityDaily
}

func (t Timespan) String() string {
	return string(t)
}
