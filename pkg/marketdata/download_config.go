package marketdata

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// BaseDownloadConfig contains the fields shared by every provider's download
// configuration.
type BaseDownloadConfig struct {
	Ticker    string `json:"ticker" jsonschema:"title=Ticker,description=The trading symbol to download data for (e.g. SPY or BTCUSDT),required" validate:"required"`
	StartDate string `json:"startDate" jsonschema:"title=Start Date,description=Start date in RFC3339 format,required" validate:"required"`
	EndDate   string `json:"endDate" jsonschema:"title=End Date,description=End date in RFC3339 format,required" validate:"required"`
	Interval  string `json:"interval" jsonschema:"title=Interval,description=Bar interval,required,enum=1m,enum=1d" validate:"required,oneof=1m 1d"`
}

// PolygonDownloadConfig contains configuration for downloading from Polygon.io.
type PolygonDownloadConfig struct {
	BaseDownloadConfig

	APIKey string `json:"apiKey" jsonschema:"title=API Key,description=Polygon.io API key for authentication,required" validate:"required"`
}

// BinanceDownloadConfig contains configuration for downloading from Binance.
// Binance public market data needs no authentication.
type BinanceDownloadConfig struct {
	BaseDownloadConfig
}

// AlpacaDownloadConfig contains configuration for downloading from Alpaca.
type AlpacaDownloadConfig struct {
	BaseDownloadConfig

	APIKey    string `json:"apiKey" jsonschema:"title=API Key,description=Alpaca API key,required" validate:"required"`
	APISecret string `json:"apiSecret" jsonschema:"title=API Secret,description=Alpaca API secret,required" validate:"required"`
}

// Validate validates the BaseDownloadConfig fields.
func (c *BaseDownloadConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid download config", err)
	}

	if _, err := time.Parse(time.RFC3339, c.StartDate); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid startDate format, expected RFC3339", err)
	}

	if _, err := time.Parse(time.RFC3339, c.EndDate); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid endDate format, expected RFC3339", err)
	}

	if _, err := ParseTimespan(c.Interval); err != nil {
		return err
	}

	return nil
}

// Validate validates the PolygonDownloadConfig.
func (c *PolygonDownloadConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid download config", err)
	}

	return c.BaseDownloadConfig.Validate()
}

// Validate validates the BinanceDownloadConfig.
func (c *BinanceDownloadConfig) Validate() error {
	return c.BaseDownloadConfig.Validate()
}

// Validate validates the AlpacaDownloadConfig.
func (c *AlpacaDownloadConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid download config", err)
	}

	return c.BaseDownloadConfig.Validate()
}

// ToDownloadParams converts a BaseDownloadConfig to DownloadParams.
func (c *BaseDownloadConfig) ToDownloadParams() (DownloadParams, error) {
	startDate, err := time.Parse(time.RFC3339, c.StartDate)
	if err != nil {
		return DownloadParams{}, errors.Wrap(errors.ErrCodeInvalidParameter, "failed to parse startDate", err)
	}

	endDate, err := time.Parse(time.RFC3339, c.EndDate)
	if err != nil {
		return DownloadParams{}, errors.Wrap(errors.ErrCodeInvalidParameter, "failed to parse endDate", err)
	}

	timespan, err := ParseTimespan(c.Interval)
	if err != nil {
		return DownloadParams{}, err
	}

	return DownloadParams{
		Ticker:      c.Ticker,
		StartDate:   startDate,
		EndDate:     endDate,
		Granularity: timespan.Granularity(),
	}, nil
}

// ToClientConfig converts a PolygonDownloadConfig to ClientConfig.
func (c *PolygonDownloadConfig) ToClientConfig(dataPath string, writerType WriterType) ClientConfig {
	return ClientConfig{
		ProviderType:    ProviderPolygon,
		WriterType:      writerType,
		DataPath:        dataPath,
		PolygonAPIKey:   c.APIKey,
		AlpacaAPIKey:    "",
		AlpacaAPISecret: "",
	}
}

// ToClientConfig converts a BinanceDownloadConfig to ClientConfig.
func (c *BinanceDownloadConfig) ToClientConfig(dataPath string, writerType WriterType) ClientConfig {
	return ClientConfig{
		ProviderType:    ProviderBinance,
		WriterType:      writerType,
		DataPath:        dataPath,
		PolygonAPIKey:   "",
		AlpacaAPIKey:    "",
		AlpacaAPISecret: "",
	}
}

// ToClientConfig converts an AlpacaDownloadConfig to ClientConfig.
func (c *AlpacaDownloadConfig) ToClientConfig(dataPath string, writerType WriterType) ClientConfig {
	return ClientConfig{
		ProviderType:    ProviderAlpaca,
		WriterType:      writerType,
		DataPath:        dataPath,
		PolygonAPIKey:   "",
		AlpacaAPIKey:    c.APIKey,
		AlpacaAPISecret: c.APISecret,
	}
}

// ParsePolygonConfig parses JSON into a PolygonDownloadConfig.
func ParsePolygonConfig(jsonConfig string) (*PolygonDownloadConfig, error) {
	var config PolygonDownloadConfig
	if err := json.Unmarshal([]byte(jsonConfig), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse JSON config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// ParseBinanceConfig parses JSON into a BinanceDownloadConfig.
func ParseBinanceConfig(jsonConfig string) (*BinanceDownloadConfig, error) {
	var config BinanceDownloadConfig
	if err := json.Unmarshal([]byte(jsonConfig), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse JSON config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// ParseAlpacaConfig parses JSON into an AlpacaDownloadConfig.
func ParseAlpacaConfig(jsonConfig string) (*AlpacaDownloadConfig, error) {
	var config AlpacaDownloadConfig
	if err := json.Unmarshal([]byte(jsonConfig), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse JSON config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
