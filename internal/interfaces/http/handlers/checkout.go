// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/messaging"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	cartService     *cart.Service
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(cartService *cart.Service, checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

// PlaceOrder handles POST /stores/:slug/checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	dest := currentTenant(c).Destination

	var result *checkout.Result
	_, err := h.cartService.WithCart(c.Request.Context(), id, func(ctx context.Context, _ *cart.Store) error {
		var err error
		result, err = h.checkoutService.PlaceOrder(ctx, dest, &req)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart),
			errors.Is(err, order.ErrMissingCustomerName),
			errors.Is(err, order.ErrCustomerNameTooLong):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, order.ErrMissingContact),
			errors.Is(err, messaging.ErrInvalidContact):
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Store is not accepting orders right now",
			})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to place order",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order ready to send",
		"data":    result,
	})
}
