// internal/domain/cart/key.go
package cart

import (
	"errors"
	"strings"
)

// KeyDelimiter separates the identity parts of a cart key
const KeyDelimiter = "__"

var ErrMalformedKey = errors.New("malformed cart key")

// KeyParts is the identity of a line item
type KeyParts struct {
	ProductID string
	Size      string
	Feature   string
}

// Key derives the cart key for a product+variant combination.
// Absent size or feature are written as empty segments.
func Key(productID, size, feature string) string {
	return productID + KeyDelimiter + size + KeyDelimiter + feature
}

// ParseKey splits a cart key into its identity parts. Product ids never
// contain the delimiter, so any extra delimiter belongs to the variant labels
// and is kept with the feature. The parts always rebuild the original key.
func ParseKey(key string) (KeyParts, error) {
	parts := strings.SplitN(key, KeyDelimiter, 3)
	if len(parts) != 3 || parts[0] == "" {
		return KeyParts{}, ErrMalformedKey
	}

	return KeyParts{
		ProductID: parts[0],
		Size:      parts[1],
		Feature:   parts[2],
	}, nil
}

// String returns the cart key of the parts
func (k KeyParts) String() string {
	return Key(k.ProductID, k.Size, k.Feature)
}
