package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "casavista-listings/internal/errors"
)

// RequireRoles gates a route group to the listed roles. It assumes Auth
// already ran and populated user_role.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		if !allowed[c.GetString("user_role")] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"message": apperrors.MsgForbidden,
					"code":    apperrors.ErrCodeForbidden,
				},
			})
			return
		}
		c.Next()
	}
}
