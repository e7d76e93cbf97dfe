package middleware

import (
	"net/http"

	"bountyboard/internal/domain"
	"bountyboard/internal/store"

	"github.com/gin-gonic/gin"
)

// AdminOnlyMiddleware checks the session user's role on each request.
// Anything but an admin account gets a 403.
func AdminOnlyMiddleware(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		u, err := users.GetByID(userID)
		if err != nil || u.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
