// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/variant"
)

// ProductHandler handles store and product catalog endpoints
type ProductHandler struct {
	catalog catalog.Reader
	config  *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(reader catalog.Reader, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		catalog: reader,
		config:  cfg,
	}
}

// GetStore handles GET /stores/:slug
func (h *ProductHandler) GetStore(c *gin.Context) {
	company := currentTenant(c).Company

	c.JSON(http.StatusOK, gin.H{
		"message": "Store retrieved successfully",
		"data": gin.H{
			"id":       company.ID,
			"name":     company.Name,
			"slug":     company.Slug,
			"address":  company.Address,
			"logo_url": company.LogoURL,
		},
	})
}

// GetProducts handles GET /stores/:slug/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var filter catalog.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	if maxList := h.config.Storefront.MaxProductList; maxList > 0 && (filter.Limit <= 0 || filter.Limit > maxList) {
		filter.Limit = maxList
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), currentTenant(c).Company.ID, &filter)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetCategories handles GET /stores/:slug/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context(), currentTenant(c).Company.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve categories",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}

// GetProductOptions handles GET /stores/:slug/products/:id/options
func (h *ProductHandler) GetProductOptions(c *gin.Context) {
	product, ok := loadProduct(c, h.catalog, c.Param("id"))
	if !ok {
		return
	}

	selection := variant.NewSelection(variant.NewResolver(product))
	if feature := c.Query("feature"); feature != "" {
		selection.SelectFeature(feature)
	}
	if size := c.Query("size"); size != "" {
		selection.SelectSize(size)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product options retrieved successfully",
		"data":    selection.Options(),
	})
}

// loadProduct fetches a product of the current store, writing the error response on failure
func loadProduct(c *gin.Context, reader catalog.Reader, rawID string) (*catalog.Product, bool) {
	productID, err := uuid.Parse(rawID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return nil, false
	}

	product, err := reader.GetProduct(c.Request.Context(), currentTenant(c).Company.ID, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		} else {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to retrieve product",
			})
		}
		return nil, false
	}

	return product, true
}
