package domain

import "time"

// Location is a geocoded address book entry. Exactly one location per user
// is the default once the user has at least one.
type Location struct {
	LocationID string    `json:"locationId"` // Primary identifier (uuid)
	UserID     string    `json:"userId"`     // Owning user
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Address    string    `json:"address,omitempty"` // May stay empty when geocoding fails
	City       string    `json:"city,omitempty"`
	Country    string    `json:"country,omitempty"`
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
