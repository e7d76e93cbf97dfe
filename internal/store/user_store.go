package store

import (
	"fmt"
	"sync"
	"time"

	"bountyboard/internal/domain"

	"github.com/google/uuid"
)

// UserStore holds user records in process memory, indexed by id, email and
// username. All reads and writes go through the store mutex.
type UserStore struct {
	mu         sync.RWMutex
	order      []string // userIDs in registration order
	byID       map[string]*domain.User
	byEmail    map[string]string // email -> userID
	byUsername map[string]string // username -> userID
	profiles   map[string]*domain.UserProfile
}

// CreateUserParams carries the registration fields. The caller hashes the
// password; the store never sees the plaintext.
type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	ReferCode    string
	Role         string // defaults to domain.RoleUser when empty
}

// UpdateUserRequest enumerates the only mutable user fields. Nil means
// leave unchanged. PasswordHash and IsActive are deliberately absent.
type UpdateUserRequest struct {
	Username    *string
	PhoneNumber *string
	ReferCode   *string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:       make(map[string]*domain.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		profiles:   make(map[string]*domain.UserProfile),
	}
}

// Create registers a new active user. Fails with ErrDuplicate when the
// email or username is already taken.
func (s *UserStore) Create(p CreateUserParams) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[p.Email]; taken {
		return domain.User{}, fmt.Errorf("email %q: %w", p.Email, ErrDuplicate)
	}
	if _, taken := s.byUsername[p.Username]; taken {
		return domain.User{}, fmt.Errorf("username %q: %w", p.Username, ErrDuplicate)
	}

	role := p.Role
	if role == "" {
		role = domain.RoleUser
	}
	now := time.Now()
	u := &domain.User{
		UserID:       uuid.NewString(),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		PhoneNumber:  p.PhoneNumber,
		ReferCode:    p.ReferCode,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.order = append(s.order, u.UserID)
	s.byID[u.UserID] = u
	s.byEmail[u.Email] = u.UserID
	s.byUsername[u.Username] = u.UserID
	return *u, nil
}

// GetByID returns the user, including soft-deleted ones.
func (s *UserStore) GetByID(userID string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[userID]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return *u, nil
}

func (s *UserStore) GetByEmail(email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, fmt.Errorf("user email %q: %w", email, ErrNotFound)
	}
	return *s.byID[id], nil
}

// Update applies the explicit mutable fields. A username change keeps the
// uniqueness invariant and fails with ErrDuplicate when taken by another user.
func (s *UserStore) Update(userID string, req UpdateUserRequest) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if req.Username != nil && *req.Username != u.Username {
		if owner, taken := s.byUsername[*req.Username]; taken && owner != userID {
			return domain.User{}, fmt.Errorf("username %q: %w", *req.Username, ErrDuplicate)
		}
		delete(s.byUsername, u.Username)
		u.Username = *req.Username
		s.byUsername[u.Username] = userID
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = *req.PhoneNumber
	}
	if req.ReferCode != nil {
		u.ReferCode = *req.ReferCode
	}
	u.UpdatedAt = time.Now()
	return *u, nil
}

// SetRole changes the user's role. Operator provisioning happens out of
// band; the update action never reaches this.
func (s *UserStore) SetRole(userID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the user. The record stays for history.
func (s *UserStore) Deactivate(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	u.IsActive = false
	u.UpdatedAt = time.Now()
	return nil
}

// CreateProfile attaches a profile to a user. At most one per user.
func (s *UserStore) CreateProfile(userID, bio, pictureID string) (domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[userID]; !ok {
		return domain.UserProfile{}, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if _, exists := s.profiles[userID]; exists {
		return domain.UserProfile{}, fmt.Errorf("profile for user %s: %w", userID, ErrDuplicate)
	}
	now := time.Now()
	p := &domain.UserProfile{
		ProfileID:        uuid.NewString(),
		UserID:           userID,
		Bio:              bio,
		ProfilePictureID: pictureID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.profiles[userID] = p
	return *p, nil
}

func (s *UserStore) GetProfile(userID string) (domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return domain.UserProfile{}, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
	}
	return *p, nil
}

// List returns all users in registration order. Used by the operator
// endpoints for stable pagination.
func (s *UserStore) List() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out
}
