package middleware

import (
	"net/http"
	"strings"

	"bountyboard/internal/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie name carrying the session token for the
// form-driven pages.
const SessionCookie = "session"

// JWTAuthMiddleware validates the session token from the Authorization
// bearer header, falling back to the session cookie, and stores the
// authenticated user id in the request context.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie(SessionCookie); err == nil {
			tokenStr = cookie
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing session token"})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("userID", claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by JWTAuthMiddleware.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
