package store

import (
	"fmt"
	"sync"
	"time"
)

// DefaultSet is an owner-scoped collection where exactly one item per owner
// carries the default mark once the owner has any items at all. Location and
// billing stores instantiate it with accessors for their item type.
type DefaultSet[T any] struct {
	mu      sync.RWMutex
	items   []*T
	byOwner map[string][]*T

	id    func(*T) string
	owner func(*T) string
	mark  func(*T, bool, time.Time) // set the default flag and bump updatedAt
}

// NewDefaultSet builds a set over items identified by id, grouped by owner,
// with mark flipping the item's default flag.
func NewDefaultSet[T any](
	id func(*T) string,
	owner func(*T) string,
	mark func(*T, bool, time.Time),
) *DefaultSet[T] {
	return &DefaultSet[T]{
		byOwner: make(map[string][]*T),
		id:      id,
		owner:   owner,
		mark:    mark,
	}
}

// Create appends the item. The owner's first item becomes the default;
// later items leave the default set unchanged.
func (s *DefaultSet[T]) Create(item *T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	ownerID := s.owner(item)
	s.mark(item, len(s.byOwner[ownerID]) == 0, time.Now())
	s.items = append(s.items, item)
	s.byOwner[ownerID] = append(s.byOwner[ownerID], item)
	return *item
}

// SetDefault makes itemID the owner's unique default. The owner's items are
// rewritten in a single pass under the write lock, so no state with zero or
// two defaults is ever observable. Fails with ErrNotFound when the item does
// not exist or belongs to someone else.
func (s *DefaultSet[T]) SetDefault(ownerID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.byOwner[ownerID]
	found := false
	for _, it := range owned {
		if s.id(it) == itemID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("item %s for owner %s: %w", itemID, ownerID, ErrNotFound)
	}
	now := time.Now()
	for _, it := range owned {
		s.mark(it, s.id(it) == itemID, now)
	}
	return nil
}

// List returns the owner's items in insertion order.
func (s *DefaultSet[T]) List(ownerID string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owned := s.byOwner[ownerID]
	out := make([]T, 0, len(owned))
	for _, it := range owned {
		out = append(out, *it)
	}
	return out
}

// Get returns a single item by id regardless of owner.
func (s *DefaultSet[T]) Get(itemID string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if s.id(it) == itemID {
			return *it, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
}

// update runs fn on the owner's item under the write lock. An item owned by
// someone else behaves like an unknown one.
func (s *DefaultSet[T]) update(ownerID, itemID string, fn func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.byOwner[ownerID] {
		if s.id(it) == itemID {
			fn(it)
			return nil
		}
	}
	return fmt.Errorf("item %s for owner %s: %w", itemID, ownerID, ErrNotFound)
}
