package types

import (
	"time"

	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// Bar is a single OHLCV observation. Prices are positive floats and Volume
// is a whole number of units traded.
type Bar struct {
	// Time is the bar's timestamp (session open for daily bars)
	Time time.Time `yaml:"time" csv:"time"`
	// Open is the first traded price of the interval
	Open float64 `yaml:"open" csv:"open"`
	// High is the highest traded price of the interval
	High float64 `yaml:"high" csv:"high"`
	// Low is the lowest traded price of the interval
	Low float64 `yaml:"low" csv:"low"`
	// Close is the last traded price of the interval
	Close float64 `yaml:"close" csv:"close"`
	// Volume is the number of units traded during the interval
	Volume uint64 `yaml:"volume" csv:"volume"`
}

// Validate checks the internal price relationships of a single bar:
// Low <= min(Open, Close) and max(Open, Close) <= High, all prices positive.
func (b Bar) Validate() error {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return errors.Newf(errors.ErrCodeInvalidBar,
			"bar at %s has non-positive price (open=%f high=%f low=%f close=%f)",
			b.Time.Format(time.RFC3339), b.Open, b.High, b.Low, b.Close)
	}

	if b.Low > b.Open || b.Low > b.Close {
		return errors.Newf(errors.ErrCodeInvalidBar,
			"bar at %s has low %f above open %f or close %f",
			b.Time.Format(time.RFC3339), b.Low, b.Open, b.Close)
	}

	if b.High < b.Open || b.High < b.Close {
		return errors.Newf(errors.ErrCodeInvalidBar,
			"bar at %s has high %f below open %f or close %f",
			b.Time.Format(time.RFC3339), b.High, b.Open, b.Close)
	}

	return nil
}

// ValidateSeries checks every bar and the series ordering. Timestamps must be
// strictly increasing. Call this once at the boundary (loading, API ingress);
// downstream code assumes a validated series.
func ValidateSeries(bars []Bar) error {
	for i, bar := range bars {
		if err := bar.Validate(); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidBar, err, "bar %d is invalid", i)
		}

		if i > 0 && !bars[i-1].Time.Before(bar.Time) {
			return errors.Newf(errors.ErrCodeUnorderedSeries,
				"bar %d at %s does not advance past bar %d at %s",
				i, bar.Time.Format(time.RFC3339), i-1, bars[i-1].Time.Format(time.RFC3339))
		}
	}

	return nil
}
