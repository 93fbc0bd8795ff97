// internal/interfaces/http/handlers/tenant.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

const tenantKey = "tenant"

// Tenant is the store a request is served for
type Tenant struct {
	Company     *catalog.Company
	Destination order.Destination
}

// TenantResolver finds the store a request targets
type TenantResolver func(c *gin.Context, reader catalog.Reader) (*Tenant, error)

// SlugTenant resolves the store from the :slug path parameter.
// Orders go to the company's own contact.
func SlugTenant() TenantResolver {
	return func(c *gin.Context, reader catalog.Reader) (*Tenant, error) {
		company, err := reader.GetCompanyBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			return nil, err
		}
		return &Tenant{Company: company, Destination: company}, nil
	}
}

// FixedTenant resolves every request to the configured store.
// Orders go to the configured contact.
func FixedTenant(cfg *config.Config) TenantResolver {
	slug := catalog.Slugify(cfg.Storefront.StoreName)
	dest := order.FixedDestination{
		Name:    cfg.Storefront.StoreName,
		Contact: cfg.Storefront.StoreContact,
	}

	return func(c *gin.Context, reader catalog.Reader) (*Tenant, error) {
		company, err := reader.GetCompanyBySlug(c.Request.Context(), slug)
		if err != nil {
			return nil, err
		}
		return &Tenant{Company: company, Destination: dest}, nil
	}
}

// LoadTenant resolves the store and attaches it to the request
func LoadTenant(reader catalog.Reader, resolve TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := resolve(c, reader)
		if err != nil {
			if errors.Is(err, catalog.ErrCompanyNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "Store not found",
				})
			} else {
				_ = c.Error(err)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to load store",
				})
			}
			c.Abort()
			return
		}

		c.Set(tenantKey, tenant)
		c.Next()
	}
}

func currentTenant(c *gin.Context) *Tenant {
	return c.MustGet(tenantKey).(*Tenant)
}

// cartID returns the id of the cart for this session and store
func cartID(c *gin.Context) (string, bool) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Session not initialized",
		})
		return "", false
	}
	return cart.ScopedID(sessionID, currentTenant(c).Company.Slug), true
}
