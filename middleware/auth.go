package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock-predictor/auth"
)

// UserIDKey is the gin context key the authenticated user ID is stored
// under.
const UserIDKey = "user_id"

// RequireAuth validates the bearer token and injects the user ID into
// the request context. Failures never echo token parse details back to
// the client.
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		userID, err := authService.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID reads the authenticated user ID set by RequireAuth.
func UserID(c *gin.Context) uint {
	return c.MustGet(UserIDKey).(uint)
}
