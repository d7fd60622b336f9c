package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
	"github.com/halcyon-lab/halcyon-trading/pkg/marketdata/provider"
	"github.com/halcyon-lab/halcyon-trading/pkg/marketdata/writer"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
	ProviderAlpaca  ProviderType = "alpaca"
)

// WriterType defines the type of market data writer.
type WriterType string

const (
	WriterDuckDB  WriterType = "duckdb"
	WriterParquet WriterType = "parquet"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType    ProviderType `validate:"required,oneof=polygon binance alpaca"`
	WriterType      WriterType   `validate:"required,oneof=duckdb parquet"`
	DataPath        string       `validate:"required"`
	PolygonAPIKey   string       `validate:"required_if=ProviderType polygon"`
	AlpacaAPIKey    string       `validate:"required_if=ProviderType alpaca"`
	AlpacaAPISecret string       `validate:"required_if=ProviderType alpaca"`
}

// DownloadParams holds the parameters for a market data download request.
type DownloadParams struct {
	Ticker      string            `validate:"required"`
	StartDate   time.Time         `validate:"required"`
	EndDate     time.Time         `validate:"required,gtfield=StartDate"`
	Granularity types.Granularity `validate:"required,oneof=daily minute"`
}

// Client downloads historical data from one provider and stores it through
// one writer.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	onProgress provider.OnDownloadProgress
}

// NewClient creates a market data client with the given configuration. The
// progress callback may be nil.
func NewClient(config ClientConfig, onProgress provider.OnDownloadProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	marketProvider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Client{
		provider:   marketProvider,
		config:     config,
		validate:   validate,
		onProgress: onProgress,
	}, nil
}

// Download runs a download described by params and returns the path of the
// dataset file it produced.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}

	marketWriter, err := c.setupWriter(params)
	if err != nil {
		return "", err
	}

	defer func() {
		if cerr := marketWriter.Close(); cerr != nil {
			// The dataset is already finalized; a close failure only leaks
			// scratch resources.
			fmt.Fprintf(os.Stderr, "warning: failed to close writer: %v\n", cerr)
		}
	}()

	c.provider.ConfigWriter(marketWriter)

	outputPath, err := c.provider.Download(
		ctx,
		params.Ticker,
		params.StartDate,
		params.EndDate,
		params.Granularity,
		c.onProgress,
	)
	if err != nil {
		return "", err
	}

	return outputPath, nil
}

// setupWriter initializes the writer the configuration selects, targeting
// TICKER_START_END_GRANULARITY.{parquet,csv} under the data path.
func (c *Client) setupWriter(params DownloadParams) (writer.Writer, error) {
	outputFileName := fmt.Sprintf("%s_%s_%s_%s.parquet",
		params.Ticker,
		params.StartDate.Format("2006-01-02"),
		params.EndDate.Format("2006-01-02"),
		params.Granularity)
	outputPath := filepath.Join(c.config.DataPath, outputFileName)

	if _, err := os.Stat(c.config.DataPath); os.IsNotExist(err) {
		if err := os.MkdirAll(c.config.DataPath, 0o755); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeStorageInitFailed, err,
				"failed to create data directory %s", c.config.DataPath)
		}
	}

	switch c.config.WriterType {
	case WriterDuckDB:
		duckdbWriter := writer.NewDuckDBWriter(outputPath)
		if err := duckdbWriter.Initialize(); err != nil {
			return nil, err
		}

		return duckdbWriter, nil
	case WriterParquet:
		parquetWriter := writer.NewParquetWriter(outputPath)
		if err := parquetWriter.Initialize(); err != nil {
			return nil, err
		}

		return parquetWriter, nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration,
			"unsupported writer type: %s", c.config.WriterType)
	}
}
