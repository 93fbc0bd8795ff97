// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/messaging"
)

// Service turns a session cart into an outbound order message
type Service struct {
	links *messaging.LinkBuilder
	log   logrus.FieldLogger
}

// NewService creates a new checkout service
func NewService(links *messaging.LinkBuilder, log logrus.FieldLogger) *Service {
	return &Service{
		links: links,
		log:   log,
	}
}

// Request represents a checkout submission
type Request struct {
	CustomerName string `json:"customer_name"`
}

// Result is the composed order plus the link that opens the messaging channel
type Result struct {
	*order.Order
	Link string `json:"link"`
}

// PlaceOrder composes the order for the cart attached to ctx. The cart is
// left untouched; sending the message is up to the caller.
func (s *Service) PlaceOrder(ctx context.Context, dest order.Destination, req *Request) (*Result, error) {
	store := cart.MustFromContext(ctx)

	o, err := order.Build(dest, store.Items(), req.CustomerName)
	if err != nil {
		return nil, err
	}

	link, err := s.links.Link(o.Target, o.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to build messaging link: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"destination": o.Destination,
		"line_count":  o.LineCount,
		"total_items": o.TotalItems,
	}).Info("Order message composed")

	return &Result{
		Order: o,
		Link:  link,
	}, nil
}
