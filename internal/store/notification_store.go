package store

import (
	"fmt"
	"sync"
	"time"

	"bountyboard/internal/domain"

	"github.com/google/uuid"
)

// NotificationStore keeps per-user event messages.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications []*domain.Notification
	byID          map[string]*domain.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{byID: make(map[string]*domain.Notification)}
}

// Create appends an unread notification for the user.
func (s *NotificationStore) Create(userID, kind, message, entityID string) domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := &domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Type:           kind,
		EntityID:       entityID,
		Message:        message,
		CreatedAt:      time.Now(),
	}
	s.notifications = append(s.notifications, n)
	s.byID[n.NotificationID] = n
	return *n
}

// MarkAsRead flips the read flag. A notification belonging to another user
// is treated as not found.
func (s *NotificationStore) MarkAsRead(userID, notificationID string) (domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.byID[notificationID]
	if !ok || n.UserID != userID {
		return domain.Notification{}, fmt.Errorf("notification %s: %w", notificationID, ErrNotFound)
	}
	n.IsRead = true
	return *n, nil
}

// ListByUser returns the user's notifications, newest first.
func (s *NotificationStore) ListByUser(userID string) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Notification
	// Walk backwards so the newest entry comes first.
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if s.notifications[i].UserID == userID {
			out = append(out, *s.notifications[i])
		}
	}
	return out
}
