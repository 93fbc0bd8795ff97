// internal/domain/order/composer.go
package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/your-org/storefront-backend/internal/domain/cart"
)

// MaxCustomerNameLength bounds the customer name accepted at checkout
const MaxCustomerNameLength = 100

const closingLine = "Please confirm this order. Thank you!"

var (
	ErrEmptyCart           = errors.New("your cart is empty")
	ErrMissingCustomerName = errors.New("please enter your name or company name")
	ErrCustomerNameTooLong = fmt.Errorf("customer name must be at most %d characters", MaxCustomerNameLength)
	ErrMissingContact      = errors.New("store has no messaging contact")
)

// Destination is the tenant an order is sent to
type Destination interface {
	DisplayName() string
	ContactID() string
}

// FixedDestination is a destination configured for single-tenant deployments
type FixedDestination struct {
	Name    string
	Contact string
}

// DisplayName returns the configured store name
func (d FixedDestination) DisplayName() string { return d.Name }

// ContactID returns the configured messaging contact
func (d FixedDestination) ContactID() string { return d.Contact }

// Order is a composed order message and its transmission target
type Order struct {
	Destination string `json:"destination"`
	Target      string `json:"target"`
	Message     string `json:"message"`
	LineCount   int    `json:"line_count"`
	TotalItems  int    `json:"total_items"`
}

// Compose serialises the cart into the order message text
func Compose(destinationName string, items []cart.LineItem, customerName string) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return "", ErrMissingCustomerName
	}
	if utf8.RuneCountInString(customerName) > MaxCustomerNameLength {
		return "", ErrCustomerNameTooLong
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🛒 Order to %s\n", destinationName)
	fmt.Fprintf(&b, "👤 From: %s\n\n", customerName)

	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Product.Name)
		if item.SelectedSize != "" {
			fmt.Fprintf(&b, "   Size: %s\n", item.SelectedSize)
		}
		if item.SelectedFeature != "" {
			fmt.Fprintf(&b, "   Option: %s\n", item.SelectedFeature)
		}
		fmt.Fprintf(&b, "   Qty: %d\n\n", item.Quantity)
	}

	b.WriteString(closingLine)
	return b.String(), nil
}

// Build composes the order for a destination and resolves its target
func Build(dest Destination, items []cart.LineItem, customerName string) (*Order, error) {
	message, err := Compose(dest.DisplayName(), items, customerName)
	if err != nil {
		return nil, err
	}

	target := strings.TrimSpace(dest.ContactID())
	if target == "" {
		return nil, ErrMissingContact
	}

	total := 0
	for _, item := range items {
		total += item.Quantity
	}

	return &Order{
		Destination: dest.DisplayName(),
		Target:      target,
		Message:     message,
		LineCount:   len(items),
		TotalItems:  total,
	}, nil
}
