package domain

import "time"

// Notification is a per-user event message.
type Notification struct {
	NotificationID string    `json:"notificationId"` // Primary identifier (uuid)
	UserID         string    `json:"userId"`         // Recipient
	Type           string    `json:"type"`           // Event kind (wallet, task, billing...)
	EntityID       string    `json:"entityId,omitempty"`
	Message        string    `json:"message"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}
