package middleware

import (
	"casavista-listings/internal/errors"
	"casavista-listings/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors queued by handlers into the standard response
// envelope. Handlers queue and return; this is the only place that writes
// error bodies for them.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			appErr := errors.MapError(err)

			logger.GlobalLogger.Errorf("Request failed: path=%s, method=%s, client_ip=%s, error=%s",
				c.Request.URL.Path,
				c.Request.Method,
				c.ClientIP(),
				appErr.TechnicalMessage)

			c.JSON(appErr.HTTPStatus, gin.H{
				"error": gin.H{
					"message": appErr.UserMessage,
					"code":    appErr.Code,
				},
			})
			return
		}
	}
}
