package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/halcyon-lab/halcyon-trading/internal/api/models"
	"github.com/halcyon-lab/halcyon-trading/pkg/marketdata"
)

// ProviderHandler exposes the market data provider registry.
type ProviderHandler struct{}

// NewProviderHandler creates a provider handler.
func NewProviderHandler() *ProviderHandler {
	return &ProviderHandler{}
}

// ListProviders handles GET /api/v1/providers.
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	names := marketdata.GetSupportedProviders()

	providers := make([]marketdata.ProviderInfo, 0, len(names))
	for _, name := range names {
		info, err := marketdata.GetProviderInfo(name)
		if err != nil {
			writeError(c, err)

			return
		}

		providers = append(providers, info)
	}

	c.JSON(http.StatusOK, models.ProvidersResponse{Providers: providers})
}

// ProviderSchema handles GET /api/v1/providers/:name/schema. It returns the
// JSON schema of the named provider's download configuration.
func (h *ProviderHandler) ProviderSchema(c *gin.Context) {
	schema, err := marketdata.GetDownloadConfigSchema(c.Param("name"))
	if err != nil {
		writeError(c, err)

		return
	}

	c.Data(http.StatusOK, "application/json", []byte(schema))
}
