package store

import (
	"time"

	"bountyboard/internal/domain"

	"github.com/google/uuid"
)

// LocationStore keeps the per-user address book with the single-default
// invariant. Address fields may stay empty when geocoding fails.
type LocationStore struct {
	set *DefaultSet[domain.Location]
}

// CreateLocationParams carries a new address book entry. Address, city and
// country are optional.
type CreateLocationParams struct {
	UserID    string
	Latitude  float64
	Longitude float64
	Address   string
	City      string
	Country   string
}

func NewLocationStore() *LocationStore {
	return &LocationStore{
		set: NewDefaultSet(
			func(l *domain.Location) string { return l.LocationID },
			func(l *domain.Location) string { return l.UserID },
			func(l *domain.Location, def bool, now time.Time) {
				l.IsDefault = def
				l.UpdatedAt = now
			},
		),
	}
}

// Create appends a location; the user's first one becomes the default.
func (s *LocationStore) Create(p CreateLocationParams) domain.Location {
	now := time.Now()
	return s.set.Create(&domain.Location{
		LocationID: uuid.NewString(),
		UserID:     p.UserID,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		Address:    p.Address,
		City:       p.City,
		Country:    p.Country,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// SetDefault makes locationID the user's unique default location.
func (s *LocationStore) SetDefault(userID, locationID string) error {
	return s.set.SetDefault(userID, locationID)
}

// ListByUser returns the user's locations in insertion order.
func (s *LocationStore) ListByUser(userID string) []domain.Location {
	return s.set.List(userID)
}
