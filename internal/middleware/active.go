package middleware

import (
	"net/http"

	"bountyboard/internal/store"

	"github.com/gin-gonic/gin"
)

// ActiveUserMiddleware checks on each request that the session's user still
// exists and has not been soft-deleted. A stale session is rejected even
// when its token is otherwise valid.
func ActiveUserMiddleware(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		u, err := users.GetByID(userID)
		if err != nil || !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account is not active"})
			return
		}
		c.Next()
	}
}
