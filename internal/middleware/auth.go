package middleware

import (
	"net/http"
	"strings"

	"board-view-api/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middlewares in this package.
const (
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyAuthenticated = "authenticated"
	KeyViewerID      = "viewer_id"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	// WebSocket clients cannot set headers, so the token may come as a query param
	return c.Query("token")
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(KeyUserID, claims.UserID)
	c.Set(KeyUsername, claims.Username)
	c.Set(KeyAuthenticated, true)
}

// JWTAuthMiddleware requires a valid viewer token
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is required",
			})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTMiddleware marks the request authenticated when it carries a
// valid token and lets anonymous viewers through. A token that is present
// but invalid is still rejected.
func OptionalJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Set(KeyAuthenticated, false)
			c.Next()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// IsAuthenticated reports whether an auth middleware accepted a token.
func IsAuthenticated(c *gin.Context) bool {
	return c.GetBool(KeyAuthenticated)
}
