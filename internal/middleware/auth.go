package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/pkg/identityclient"
)

// sessionToken pulls the caller's credential from the Authorization header
// or, for browser clients, the access_token cookie.
func sessionToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// Auth validates the session against the identity service on every request.
// Anything short of an active token - missing, expired, revoked, or the
// identity service being unreachable - is a 401.
func Auth(identity *identityclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		result := identity.IntrospectToken(c.Request.Context(), token)
		if !result.Active {
			abortUnauthorized(c)
			return
		}

		c.Set("user_id", result.Claims.Subject)
		c.Set("username", result.Claims.Username)
		c.Set("user_role", result.Claims.Role)
		// Kept for calls made on the user's behalf, like profile enrichment.
		c.Set("access_token", token)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"message": apperrors.MsgAuthenticationFailed,
			"code":    apperrors.ErrCodeAuthenticationFailed,
		},
	})
}
