// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/halcyon-lab/halcyon-trading/internal/api/models"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// writeError maps a domain error onto an HTTP status and the uniform error
// body. Validation failures are the client's fault, missing resources are
// 404, everything else is a server error.
func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch {
	case code == errors.ErrCodeDataNotFound || code == errors.ErrCodeStrategyNotFound ||
		code == errors.ErrCodeInvalidProvider:
		status = http.StatusNotFound
	case code >= errors.ErrCodeInvalidParameter && code < errors.ErrCodeInvalidBar:
		status = http.StatusBadRequest
	case code >= errors.ErrCodeInvalidBar && code < errors.ErrCodeStrategyNotFound:
		// Data the request pointed at exists but cannot be backtested.
		status = http.StatusUnprocessableEntity
	case code == errors.ErrCodeStrategyConfigError || code == errors.ErrCodeUnsupportedStrategy ||
		code == errors.ErrCodeBacktestNoStrategies:
		status = http.StatusBadRequest
	}

	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    int(code),
			Message: err.Error(),
		},
	})
}

// writeBindError reports a request body that did not bind as JSON.
func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    int(errors.ErrCodeInvalidParameter),
			Message: "invalid request body: " + err.Error(),
		},
	})
}
