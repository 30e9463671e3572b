package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/pkg/relationclient"
)

// InternalAuth guards the service-to-service surface with the shared
// secret. An unset secret closes the surface entirely rather than opening
// it.
func InternalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(relationclient.HeaderInternalSecret)
		if secret == "" || presented == "" ||
			subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"message": apperrors.MsgAuthenticationFailed,
					"code":    apperrors.ErrCodeAuthenticationFailed,
				},
			})
			return
		}
		c.Next()
	}
}
