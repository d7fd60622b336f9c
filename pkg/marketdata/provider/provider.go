// Package provider implements historical market data providers. Each provider
// fetches OHLCV aggregates from one vendor and pushes them through a
// configured writer, so downloads stream to disk instead of accumulating in
// memory.
package provider

import (
	"context"
	"time"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
	"github.com/halcyon-lab/halcyon-trading/pkg/marketdata/writer"
)

// OnDownloadProgress reports download progress. current and total are in
// provider-specific units (bars, days, batches); message is human readable.
type OnDownloadProgress = func(current float64, total float64, message string)

// Provider downloads historical bars for one ticker and granularity.
type Provider interface {
	// Name returns the stable provider identifier (e.g. "polygon").
	Name() string
	// ConfigWriter configures the writer the download streams into.
	// It must be called before Download.
	ConfigWriter(w writer.Writer)
	// Download fetches bars for the ticker between startDate and endDate at
	// the given granularity and writes them through the configured writer.
	// It returns the finalized output path. Cancel the context to abort.
	Download(ctx context.Context, ticker string, startDate, endDate time.Time,
		granularity types.Granularity, onProgress OnDownloadProgress) (path string, err error)
}

// checkDownloadArgs validates the arguments shared by every provider.
func checkDownloadArgs(w writer.Writer, ticker string, startDate, endDate time.Time, granularity types.Granularity) error {
	if w == nil {
		return errors.New(errors.ErrCodeMarketDataFetchFailed,
			"no writer configured; call ConfigWriter first")
	}

	if ticker == "" {
		return errors.New(errors.ErrCodeInvalidParameter, "ticker is required")
	}

	if !endDate.After(startDate) {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"end date %s must come after start date %s",
			endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}

	if !granularity.IsValid() {
		return errors.Newf(errors.ErrCodeInvalidGranularity, "invalid granularity %q", granularity)
	}

	return nil
}

// noProgress is substituted when callers pass a nil progress callback.
func noProgress(float64, float64, string) {}
