package middlewares

import (
	"log"
	"net/http"
	"strings"

	authUtils "youtube-be/utils"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user's hex id.
const UserIDKey = "user_id"

// AuthMiddleware requires an "Authorization: Bearer <token>" header signed
// with secret and stores the caller's id under UserIDKey.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}

		tokenString := strings.TrimSpace(authHeader[len("Bearer "):])
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token, unauthorized"})
			return
		}

		userID, err := authUtils.ParseToken(tokenString, secret)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
