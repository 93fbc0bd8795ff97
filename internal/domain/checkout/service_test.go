package checkout

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/messaging"
)

func newService() *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(messaging.NewLinkBuilder(""), log)
}

func TestPlaceOrder(t *testing.T) {
	store := cart.NewStore()
	store.Add(catalog.Product{ID: uuid.New(), Name: "Widget"}, 2, "M", "Red")
	ctx := cart.NewContext(context.Background(), store)

	tenant := &catalog.Company{Name: "Acme", Phone: "+91 98765 43210"}
	res, err := newService().PlaceOrder(ctx, tenant, &Request{CustomerName: "Jane"})
	require.NoError(t, err)

	assert.Equal(t, "+91 98765 43210", res.Target)
	assert.Contains(t, res.Message, "1. Widget\n   Size: M\n   Option: Red\n   Qty: 2\n")
	assert.True(t, strings.HasPrefix(res.Link, "https://wa.me/919876543210?text="))
	assert.Equal(t, 1, store.Len(), "checkout must not clear the cart")
}

func TestPlaceOrder_Validation(t *testing.T) {
	svc := newService()
	dest := order.FixedDestination{Name: "Shop", Contact: "918431123556"}

	ctx := cart.NewContext(context.Background(), cart.NewStore())
	_, err := svc.PlaceOrder(ctx, dest, &Request{CustomerName: "Jane"})
	assert.ErrorIs(t, err, order.ErrEmptyCart)

	store := cart.NewStore()
	store.Add(catalog.Product{ID: uuid.New(), Name: "Widget"}, 1, "", "")
	ctx = cart.NewContext(context.Background(), store)
	_, err = svc.PlaceOrder(ctx, dest, &Request{CustomerName: " "})
	assert.ErrorIs(t, err, order.ErrMissingCustomerName)

	_, err = svc.PlaceOrder(ctx, order.FixedDestination{Name: "Shop", Contact: "call us"}, &Request{CustomerName: "Jane"})
	assert.ErrorIs(t, err, messaging.ErrInvalidContact)
}

func TestPlaceOrder_WithoutSession(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = newService().PlaceOrder(context.Background(), order.FixedDestination{Name: "Shop", Contact: "1"}, &Request{CustomerName: "Jane"})
	})
}
