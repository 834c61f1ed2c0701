package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/logger"
)

// PipelineAuthMiddleware creates a Gin middleware that validates the X-API-Key
// header against the configured pipeline API key. Pipeline routes stay closed
// until a key is configured.
func PipelineAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			writeError(c, apperrors.ErrPipelineNotConfigured)
			c.Abort()
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			logger.Named("pipeline").Warnw("rejected pipeline request",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
			)
			writeError(c, apperrors.ErrInvalidAPIKey)
			c.Abort()
			return
		}
		c.Next()
	}
}
