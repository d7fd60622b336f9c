package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
	"github.com/halcyon-lab/halcyon-trading/pkg/marketdata/writer"
)

// klinePageSize is Binance's default page length; a shorter page marks the
// last one.
const klinePageSize = 500

// BinanceClient downloads historical klines from the Binance public API.
// Public market data needs no credentials.
type BinanceClient struct {
	client *binance.Client
	writer writer.Writer
}

// NewBinanceClient creates a Binance provider.
func NewBinanceClient() (*BinanceClient, error) {
	return &BinanceClient{
		client: binance.NewClient("", ""),
		writer: nil,
	}, nil
}

// Name returns the provider identifier.
func (c *BinanceClient) Name() string {
	return "binance"
}

// ConfigWriter configures the writer the download streams into.
func (c *BinanceClient) ConfigWriter(w writer.Writer) {
	c.writer = w
}

// Download pages through the klines endpoint and streams each bar to the
// writer. Binance limits each page to 500 klines; the page start advances to
// one interval past the last close time seen.
func (c *BinanceClient) Download(ctx context.Context, ticker string, startDate, endDate time.Time,
	granularity types.Granularity, onProgress OnDownloadProgress) (path string, err error) {
	if err := checkDownloadArgs(c.writer, ticker, startDate, endDate, granularity); err != nil {
		return "", err
	}

	if onProgress == nil {
		onProgress = noProgress
	}

	interval := "1d"
	if granularity == types.GranularityMinute {
		interval = "1m"
	}

	startMillis := startDate.UnixMilli()
	endMillis := endDate.UnixMilli()
	currentStart := startMillis

	for {
		klines, err := c.client.NewKlinesService().
			Symbol(ticker).
			Interval(interval).
			StartTime(currentStart).
			EndTime(endMillis).
			Do(ctx)
		if err != nil {
			return "", errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err,
				"failed to fetch %s klines for %s", interval, ticker)
		}

		onProgress(float64(currentStart-startMillis), float64(endMillis-startMillis),
			fmt.Sprintf("Downloading %s klines from Binance", ticker))

		if err := c.writeKlines(ticker, klines); err != nil {
			return "", err
		}

		if len(klines) < klinePageSize {
			break
		}

		next := klines[len(klines)-1].CloseTime + 1
		if next <= currentStart || next >= endMillis {
			break
		}

		currentStart = next
	}

	onProgress(float64(endMillis-startMillis), float64(endMillis-startMillis),
		fmt.Sprintf("Downloaded %s klines from Binance", ticker))

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}

// writeKlines converts one page of klines and streams it to the writer.
func (c *BinanceClient) writeKlines(ticker string, klines []*binance.Kline) error {
	for i, kline := range klines {
		bar, err := klineToBar(kline)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err,
				"failed to parse kline %d for %s", i, ticker)
		}

		if err := c.writer.Write(writer.Record{Symbol: ticker, Bar: bar}); err != nil {
			return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err,
				"failed to write kline %d for %s", i, ticker)
		}
	}

	return nil
}

// klineToBar converts Binance's string-encoded kline into a Bar.
func klineToBar(kline *binance.Kline) (types.Bar, error) {
	open, err := strconv.ParseFloat(kline.Open, 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid open %q: %w", kline.Open, err)
	}

	high, err := strconv.ParseFloat(kline.High, 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid high %q: %w", kline.High, err)
	}

	low, err := strconv.ParseFloat(kline.Low, 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid low %q: %w", kline.Low, err)
	}

	closePrice, err := strconv.ParseFloat(kline.Close, 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid close %q: %w", kline.Close, err)
	}

	volume, err := strconv.ParseFloat(kline.Volume, 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid volume %q: %w", kline.Volume, err)
	}

	if volume < 0 {
		return types.Bar{}, fmt.Errorf("negative volume %f", volume)
	}

	return types.Bar{
		Time:   time.UnixMilli(kline.OpenTime).UTC(),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: uint64(volume),
	}, nil
}
