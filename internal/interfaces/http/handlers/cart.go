// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/variant"
)

var (
	errFeatureRequired   = errors.New("please select an option")
	errSizeRequired      = errors.New("please select a size")
	errFeatureNotOffered = errors.New("selected option is not available")
	errSizeNotOffered    = errors.New("selected size is not available")
	errOutOfStock        = errors.New("product is out of stock")
)

// CartHandler handles session cart endpoints
type CartHandler struct {
	cartService *cart.Service
	catalog     catalog.Reader
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, reader catalog.Reader) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		catalog:     reader,
	}
}

// AddToCartRequest represents a request to add a product selection to the cart
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"max=999"`
	Size      string `json:"size"`
	Feature   string `json:"feature"`
}

// UpdateCartItemRequest represents a request to change a line item quantity
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=999"`
}

// CartItemResponse represents a line item in cart responses
type CartItemResponse struct {
	Key       string    `json:"key"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     *float64  `json:"price,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Size      string    `json:"size,omitempty"`
	Feature   string    `json:"feature,omitempty"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// CartResponse represents the session cart
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	LineCount  int                `json:"line_count"`
	TotalItems int                `json:"total_items"`
	UpdatedAt  *time.Time         `json:"updated_at,omitempty"`
}

// GetCart handles GET /stores/:slug/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	snap, err := h.cartService.Snapshot(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    newCartResponse(snap),
	})
}

// GetCartCount handles GET /stores/:slug/cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	snap, err := h.cartService.Snapshot(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"total_items": snap.TotalItems(),
		},
	})
}

// AddToCart handles POST /stores/:slug/cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, ok := loadProduct(c, h.catalog, req.ProductID)
	if !ok {
		return
	}

	selection, err := resolveSelection(product, req.Feature, req.Size)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
		})
		return
	}

	var key string
	snap, err := h.cartService.WithCart(c.Request.Context(), id, func(_ context.Context, store *cart.Store) error {
		key = store.Add(*product, req.Quantity, selection.Size(), selection.Feature())
		return nil
	})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add item to cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data": gin.H{
			"key":  key,
			"cart": newCartResponse(snap),
		},
	})
}

// UpdateCartItem handles PUT /stores/:slug/cart/items/:key
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	key, ok := lineKey(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.mutate(c, id, "Cart item updated successfully", func(store *cart.Store) {
		store.UpdateQuantity(key, *req.Quantity)
	})
}

// RemoveFromCart handles DELETE /stores/:slug/cart/items/:key
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	key, ok := lineKey(c)
	if !ok {
		return
	}

	h.mutate(c, id, "Item removed from cart successfully", func(store *cart.Store) {
		store.Remove(key)
	})
}

// ClearCart handles DELETE /stores/:slug/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	h.mutate(c, id, "Cart cleared successfully", func(store *cart.Store) {
		store.Clear()
	})
}

func (h *CartHandler) mutate(c *gin.Context, id, message string, fn func(store *cart.Store)) {
	snap, err := h.cartService.WithCart(c.Request.Context(), id, func(_ context.Context, store *cart.Store) error {
		fn(store)
		return nil
	})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    newCartResponse(snap),
	})
}

// resolveSelection validates a requested feature and size against the product
func resolveSelection(product *catalog.Product, feature, size string) (*variant.Selection, error) {
	if !product.InStock {
		return nil, errOutOfStock
	}

	resolver := variant.NewResolver(product)
	selection := variant.NewSelection(resolver)

	if feature != "" && !selection.SelectFeature(feature) {
		return nil, errFeatureNotOffered
	}
	// A missing feature is reported before any size check
	if selection.Feature() == "" && len(resolver.Features()) > 0 {
		return nil, errFeatureRequired
	}
	if size != "" && !selection.SelectSize(size) {
		return nil, errSizeNotOffered
	}

	if !selection.CanAdd() {
		return nil, errSizeRequired
	}

	return selection, nil
}

// lineKey reads and validates the :key path parameter
func lineKey(c *gin.Context) (string, bool) {
	key := c.Param("key")
	if _, err := cart.ParseKey(key); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart item key",
		})
		return "", false
	}
	return key, true
}

func newCartResponse(snap cart.Snapshot) CartResponse {
	items := make([]CartItemResponse, 0, len(snap.Items))
	for _, item := range snap.Items {
		resp := CartItemResponse{
			Key:       item.Key(),
			ProductID: item.Product.ID.String(),
			Name:      item.Product.Name,
			Size:      item.SelectedSize,
			Feature:   item.SelectedFeature,
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
		}
		if images := variant.NewResolver(&item.Product).AllImages(); len(images) > 0 {
			resp.ImageURL = images[0]
		}
		if item.Product.HasPrice() {
			price := item.Product.Price
			resp.Price = &price
		}
		items = append(items, resp)
	}

	resp := CartResponse{
		Items:      items,
		LineCount:  len(items),
		TotalItems: snap.TotalItems(),
	}
	if !snap.UpdatedAt.IsZero() {
		updated := snap.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
