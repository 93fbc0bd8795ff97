// internal/domain/cart/store.go
package cart

import (
	"sync"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// MaxQuantity is the largest quantity a single line item can hold
const MaxQuantity = 999

// Store is an ordered, mergeable collection of line items owned by one session.
// All operations are serialised by a single mutex per store.
type Store struct {
	mu        sync.Mutex
	items     []LineItem
	createdAt time.Time
	updatedAt time.Time
}

// NewStore creates an empty cart store
func NewStore() *Store {
	now := time.Now().UTC()
	return &Store{
		items:     []LineItem{},
		createdAt: now,
		updatedAt: now,
	}
}

// Restore rebuilds a store from a snapshot
func Restore(snap Snapshot) *Store {
	s := &Store{
		items:     append([]LineItem{}, snap.Items...),
		createdAt: snap.CreatedAt,
		updatedAt: snap.UpdatedAt,
	}
	if s.createdAt.IsZero() {
		s.createdAt = time.Now().UTC()
	}
	if s.updatedAt.IsZero() {
		s.updatedAt = s.createdAt
	}
	return s
}

// Add puts quantity units of a product variant into the cart. An existing
// line item with the same key is incremented in place; otherwise a new item
// is appended. Quantities are clamped to [1, MaxQuantity], including the
// merged total.
func (s *Store) Add(product catalog.Product, quantity int, size, feature string) string {
	quantity = clampQuantity(quantity)
	key := Key(product.ID.String(), size, feature)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.updatedAt = time.Now().UTC()
	if i := s.indexOf(key); i >= 0 {
		s.items[i].Quantity = clampQuantity(min(s.items[i].Quantity, MaxQuantity) + quantity)
		return key
	}

	s.items = append(s.items, LineItem{
		Product:         product,
		Quantity:        quantity,
		SelectedSize:    size,
		SelectedFeature: feature,
		AddedAt:         s.updatedAt,
	})
	return key
}

// Remove deletes the line item addressed by key, if any
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(key)
}

// UpdateQuantity replaces the quantity of a line item in place.
// A quantity of zero or less removes the item. Larger quantities are capped
// at MaxQuantity.
func (s *Store) UpdateQuantity(key string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(key)
		return
	}

	if i := s.indexOf(key); i >= 0 {
		s.items[i].Quantity = clampQuantity(quantity)
		s.updatedAt = time.Now().UTC()
	}
}

// Clear empties the cart
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []LineItem{}
	s.updatedAt = time.Now().UTC()
}

// Items returns a copy of the line items in cart order
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]LineItem{}, s.items...)
}

// Len returns the number of distinct line items
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// TotalItems returns the sum of all quantities
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sumQuantities(s.items)
}

// Snapshot returns the serialisable state of the store
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Items:     append([]LineItem{}, s.items...),
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
}

func (s *Store) remove(key string) {
	if i := s.indexOf(key); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.updatedAt = time.Now().UTC()
	}
}

func (s *Store) indexOf(key string) int {
	for i := range s.items {
		if s.items[i].Key() == key {
			return i
		}
	}
	return -1
}

func clampQuantity(quantity int) int {
	switch {
	case quantity < 1:
		return 1
	case quantity > MaxQuantity:
		return MaxQuantity
	}
	return quantity
}
