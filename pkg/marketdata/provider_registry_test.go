package marketdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

func TestGetSupportedProviders(t *testing.T) {
	providers := GetSupportedProviders()
	assert.Equal(t, []string{"alpaca", "binance", "polygon"}, providers)
}

func TestGetProviderInfo(t *testing.T) {
	info, err := GetProviderInfo("binance")
	require.NoError(t, err)
	assert.Equal(t, "Binance", info.DisplayName)
	assert.False(t, info.RequiresAuth)

	info, err = GetProviderInfo("polygon")
	require.NoError(t, err)
	assert.True(t, info.RequiresAuth)

	_, err = GetProviderInfo("bloomberg")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidProvider))
}

func TestNewProviderUnsupported(t *testing.T) {
	_, err := NewProvider(ClientConfig{ProviderType: ProviderType("bloomberg")})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidProvider))
}

func TestNewProviderByType(t *testing.T) {
	binance, err := NewProvider(ClientConfig{ProviderType: ProviderBinance})
	require.NoError(t, err)
	assert.Equal(t, "binance", binance.Name())

	polygon, err := NewProvider(ClientConfig{ProviderType: ProviderPolygon, PolygonAPIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, "polygon", polygon.Name())

	_, err = NewProvider(ClientConfig{ProviderType: ProviderPolygon})
	require.Error(t, err)
}

func TestGetDownloadConfigSchema(t *testing.T) {
	for _, name := range GetSupportedProviders() {
		schema, err := GetDownloadConfigSchema(name)
		require.NoError(t, err, "schema for %s", name)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(schema), &decoded))
		assert.Contains(t, schema, "ticker")
		assert.Contains(t, schema, "interval")
	}

	_, err := GetDownloadConfigSchema("bloomberg")
	require.Error(t, err)
}

func TestParseDownloadConfig(t *testing.T) {
	parsed, err := ParseDownloadConfig("binance",
		`{"ticker":"ETHUSDT","startDate":"2024-01-01T00:00:00Z","endDate":"2024-02-01T00:00:00Z","interval":"1d"}`)
	require.NoError(t, err)

	config, ok := parsed.(*BinanceDownloadConfig)
	require.True(t, ok)
	assert.Equal(t, "ETHUSDT", config.Ticker)

	_, err = ParseDownloadConfig("bloomberg", `{}`)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidProvider))
}
