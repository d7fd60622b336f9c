// Package middleware holds the cross-cutting gin middleware of the HTTP API.
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/halcyon-lab/halcyon-trading/internal/api/models"
	"github.com/halcyon-lab/halcyon-trading/internal/logger"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// Logger logs one structured line per request.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Recovery converts a panicking handler into a 500 with the uniform error
// body instead of a dropped connection.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error("handler panicked",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    int(errors.ErrCodeUnknown),
				Message: "internal server error",
			},
		})
	})
}
