package domain

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User identity record. Unique by Email and Username.
type User struct {
	UserID       string    `json:"userId"`                // Primary identifier (uuid)
	Username     string    `json:"username"`              // Unique username
	Email        string    `json:"email"`                 // Unique email
	PasswordHash string    `json:"-"`                     // Bcrypt hash, never serialized
	PhoneNumber  string    `json:"phoneNumber,omitempty"` // Optional phone number
	ReferCode    string    `json:"referCode,omitempty"`   // Optional referral code
	Role         string    `json:"role"`                  // user or admin
	IsActive     bool      `json:"isActive"`              // False after soft delete
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserProfile is the optional profile attached to a user (at most one per user).
type UserProfile struct {
	ProfileID        string    `json:"profileId"`
	UserID           string    `json:"userId"`
	Bio              string    `json:"bio,omitempty"`
	ProfilePictureID string    `json:"profilePictureId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
