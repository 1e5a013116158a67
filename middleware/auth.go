package middleware

import (
	"net/http"
	"strings"

	"carebook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// RequireAuth validates the bearer token and, when role is non-empty,
// requires the token to carry that role. The resolved identity is exposed
// to handlers through the gin context; nothing downstream re-reads headers.
func RequireAuth(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, tokenRole, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		if role != "" && tokenRole != role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		c.Set(CtxUserID, subject)
		c.Set(CtxRole, tokenRole)
		c.Next()
	}
}

// ActingUser returns the authenticated identity from the gin context.
func ActingUser(c *gin.Context) (id, role string) {
	return c.GetString(CtxUserID), c.GetString(CtxRole)
}
