package marketdata

import (
	"sort"

	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
	"github.com/halcyon-lab/halcyon-trading/pkg/marketdata/provider"
	"github.com/halcyon-lab/halcyon-trading/pkg/utils"
)

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderPolygon: {
		Name:         string(ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "US stock market data provider with historical OHLCV aggregates",
		RequiresAuth: true,
	},
	ProviderBinance: {
		Name:         string(ProviderBinance),
		DisplayName:  "Binance",
		Description:  "Cryptocurrency exchange with public historical kline data",
		RequiresAuth: false,
	},
	ProviderAlpaca: {
		Name:         string(ProviderAlpaca),
		DisplayName:  "Alpaca",
		Description:  "US stock broker with a historical market data API",
		RequiresAuth: true,
	},
}

// NewProvider creates the provider a client configuration selects.
func NewProvider(config ClientConfig) (provider.Provider, error) {
	switch config.ProviderType {
	case ProviderPolygon:
		return provider.NewPolygonClient(config.PolygonAPIKey)
	case ProviderBinance:
		return provider.NewBinanceClient()
	case ProviderAlpaca:
		return provider.NewAlpacaClient(config.AlpacaAPIKey, config.AlpacaAPISecret, "")
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider,
			"unsupported market data provider: %s", config.ProviderType)
	}
}

// GetSupportedProviders returns all supported provider names, sorted.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidProvider,
			"unsupported provider: %s", providerName)
	}

	return info, nil
}

// GetDownloadConfigSchema returns the JSON schema for a provider's download
// configuration.
func GetDownloadConfigSchema(providerName string) (string, error) {
	switch ProviderType(providerName) {
	case ProviderPolygon:
		//nolint:exhaustruct // empty struct is intentional for schema generation
		return utils.GetSchemaFromConfig(PolygonDownloadConfig{})
	case ProviderBinance:
		//nolint:exhaustruct // empty struct is intentional for schema generation
		return utils.GetSchemaFromConfig(BinanceDownloadConfig{})
	case ProviderAlpaca:
		//nolint:exhaustruct // empty struct is intentional for schema generation
		return utils.GetSchemaFromConfig(AlpacaDownloadConfig{})
	default:
		return "", errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}
}

// ParseDownloadConfig parses a JSON configuration string for the given
// provider. The result can be type-asserted to the provider's config type.
func ParseDownloadConfig(providerName string, jsonConfig string) (interface{}, error) {
	switch ProviderType(providerName) {
	case ProviderPolygon:
		return ParsePolygonConfig(jsonConfig)
	case ProviderBinance:
		return ParseBinanceConfig(jsonConfig)
	case ProviderAlpaca:
		return ParseAlpacaConfig(jsonConfig)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}
}
