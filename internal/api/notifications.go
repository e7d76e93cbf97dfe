package api

import (
	"net/http"

	"bountyboard/internal/middleware"
	"bountyboard/internal/store"

	"github.com/gin-gonic/gin"
)

// ListNotificationsHandler returns the caller's notifications, newest first.
func ListNotificationsHandler(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		c.JSON(http.StatusOK, gin.H{"notifications": s.Notifications.ListByUser(userID)})
	}
}

// MarkNotificationReadHandler marks one of the caller's notifications read.
// Another user's notification id behaves like an unknown one.
func MarkNotificationReadHandler(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		n, err := s.Notifications.MarkAsRead(userID, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notification": n})
	}
}
