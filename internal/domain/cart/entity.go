// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// LineItem is one product+variant entry of a cart
type LineItem struct {
	Product         catalog.Product `json:"product"` // Snapshot taken when first added
	Quantity        int             `json:"quantity"`
	SelectedSize    string          `json:"selected_size,omitempty"`
	SelectedFeature string          `json:"selected_feature,omitempty"`
	AddedAt         time.Time       `json:"added_at"`
}

// Key returns the cart key addressing the line item
func (i LineItem) Key() string {
	return Key(i.Product.ID.String(), i.SelectedSize, i.SelectedFeature)
}

// Snapshot is the serialisable state of a cart
type Snapshot struct {
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TotalItems sums the quantities of the snapshot's items
func (s Snapshot) TotalItems() int {
	return sumQuantities(s.Items)
}

func sumQuantities(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
