package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/schollz/progressbar/v3"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
	"github.com/halcyon-lab/halcyon-trading/pkg/marketdata/writer"
)

// PolygonClient downloads historical aggregates from Polygon.io.
type PolygonClient struct {
	client *polygon.Client
	writer writer.Writer
}

// NewPolygonClient creates a Polygon provider. An API key is required.
func NewPolygonClient(apiKey string) (*PolygonClient, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "polygon API key is required")
	}

	return &PolygonClient{
		client: polygon.New(apiKey),
		writer: nil,
	}, nil
}

// Name returns the provider identifier.
func (c *PolygonClient) Name() string {
	return "polygon"
}

// ConfigWriter configures the writer the download streams into.
func (c *PolygonClient) ConfigWriter(w writer.Writer) {
	c.writer = w
}

// Download pages through Polygon's aggregate iterator and streams each bar to
// the writer. Progress is reported in days covered.
func (c *PolygonClient) Download(ctx context.Context, ticker string, startDate, endDate time.Time,
	granularity types.Granularity, onProgress OnDownloadProgress) (path string, err error) {
	if err := checkDownloadArgs(c.writer, ticker, startDate, endDate, granularity); err != nil {
		return "", err
	}

	if onProgress == nil {
		onProgress = noProgress
	}

	timespan := models.Day
	if granularity == types.GranularityMinute {
		timespan = models.Minute
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1

	bar := progressbar.NewOptions(totalDays,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", ticker)),
		progressbar.OptionShowCount())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   timespan,
		From:       models.Millis(startDate),
		To:         models.Millis(endDate),
	}.WithLimit(50000)

	iter := c.client.ListAggs(ctx, params)

	processed := 0

	for iter.Next() {
		agg := iter.Item()

		err = c.writer.Write(writer.Record{
			Symbol: ticker,
			Bar: types.Bar{
				Time:   time.Time(agg.Timestamp).UTC(),
				Open:   agg.Open,
				High:   agg.High,
				Low:    agg.Low,
				Close:  agg.Close,
				Volume: uint64(agg.Volume),
			},
		})
		if err != nil {
			return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err,
				"failed to write bar %d for %s", processed, ticker)
		}

		processed++
		if processed%1000 == 0 {
			daysElapsed := int(time.Time(agg.Timestamp).Sub(startDate).Hours() / 24)
			bar.Set(daysElapsed)
			onProgress(float64(daysElapsed), float64(totalDays), fmt.Sprintf("Downloading %s", ticker))
		}
	}

	if iter.Err() != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, iter.Err(),
			"error iterating polygon aggregates for %s", ticker)
	}

	bar.Finish()
	onProgress(float64(totalDays), float64(totalDays), fmt.Sprintf("Downloaded %d bars for %s", processed, ticker))

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}
