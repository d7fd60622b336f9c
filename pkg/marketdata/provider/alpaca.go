package provider

import (
	"context"
	"fmt"
	"time"

	alpacamd "github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
	"github.com/halcyon-lab/halcyon-trading/pkg/marketdata/writer"
)

// AlpacaClient downloads historical stock bars from the Alpaca market data
// API.
type AlpacaClient struct {
	client *alpacamd.Client
	writer writer.Writer
}

// NewAlpacaClient creates an Alpaca provider. baseURL overrides the API
// endpoint when non-empty; tests point it at a local server.
func NewAlpacaClient(apiKey, apiSecret, baseURL string) (*AlpacaClient, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "alpaca API key and secret are required")
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	opts := alpacamd.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   baseURL,
	}

	return &AlpacaClient{
		client: alpacamd.NewClient(opts),
		writer: nil,
	}, nil
}

// Name returns the provider identifier.
func (c *AlpacaClient) Name() string {
	return "alpaca"
}

// ConfigWriter configures the writer the download streams into.
func (c *AlpacaClient) ConfigWriter(w writer.Writer) {
	c.writer = w
}

// Download fetches bars in one paged request and streams them to the writer.
// The Alpaca SDK handles page tokens internally.
func (c *AlpacaClient) Download(ctx context.Context, ticker string, startDate, endDate time.Time,
	granularity types.Granularity, onProgress OnDownloadProgress) (path string, err error) {
	if err := checkDownloadArgs(c.writer, ticker, startDate, endDate, granularity); err != nil {
		return "", err
	}

	if onProgress == nil {
		onProgress = noProgress
	}

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	timeFrame := alpacamd.OneDay
	if granularity == types.GranularityMinute {
		timeFrame = alpacamd.OneMin
	}

	onProgress(0, 1, fmt.Sprintf("Downloading %s bars from Alpaca", ticker))

	//nolint:exhaustruct // third-party struct with many optional fields
	bars, err := c.client.GetBars(ticker, alpacamd.GetBarsRequest{
		TimeFrame: timeFrame,
		Start:     startDate,
		End:       endDate,
	})
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err,
			"failed to fetch alpaca bars for %s", ticker)
	}

	for i, alpacaBar := range bars {
		err = c.writer.Write(writer.Record{
			Symbol: ticker,
			Bar: types.Bar{
				Time:   alpacaBar.Timestamp.UTC(),
				Open:   alpacaBar.Open,
				High:   alpacaBar.High,
				Low:    alpacaBar.Low,
				Close:  alpacaBar.Close,
				Volume: alpacaBar.Volume,
			},
		})
		if err != nil {
			return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err,
				"failed to write bar %d for %s", i, ticker)
		}
	}

	onProgress(1, 1, fmt.Sprintf("Downloaded %d bars for %s", len(bars), ticker))

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}
