package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/identity/services"
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

// Session validates tokens locally: signature and expiry, jti not denylisted,
// account still active. This service minted the token, so no network hop is
// needed to trust it.
func Session(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		claims, reason := tokens.Verify(c.Request.Context(), token)
		if reason != "" {
			abortUnauthorized(c)
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("username", claims.Username)
		c.Set("user_role", claims.Role)
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
