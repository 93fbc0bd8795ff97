// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

// Dependencies holds the services the routes are wired against
type Dependencies struct {
	Catalog  catalog.Reader
	Cart     *cart.Service
	Checkout *checkout.Service
	Sessions *auth.SessionManager
	Log      logrus.FieldLogger
}

// SetupRoutes mounts the storefront under /stores/:slug, or under /store
// when the deployment serves a single configured store
func SetupRoutes(rg *gin.RouterGroup, deps *Dependencies, cfg *config.Config) {
	if cfg.IsSingleStore() {
		SetupStoreRoutes(rg.Group("/store"), deps, cfg, handlers.FixedTenant(cfg))
		return
	}

	SetupStoreRoutes(rg.Group("/stores/:slug"), deps, cfg, handlers.SlugTenant())
}

// SetupStoreRoutes sets up catalog, cart and checkout routes for one store
func SetupStoreRoutes(store *gin.RouterGroup, deps *Dependencies, cfg *config.Config, resolve handlers.TenantResolver) {
	productHandler := handlers.NewProductHandler(deps.Catalog, cfg)
	cartHandler := handlers.NewCartHandler(deps.Cart, deps.Catalog)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Cart, deps.Checkout)

	store.Use(handlers.LoadTenant(deps.Catalog, resolve))
	{
		store.GET("", productHandler.GetStore)
		store.GET("/products", productHandler.GetProducts)
		store.GET("/products/:id/options", productHandler.GetProductOptions)
		store.GET("/categories", productHandler.GetCategories)
	}

	// Cart and checkout are bound to the browsing session
	session := middleware.Session(cfg, deps.Sessions, deps.Log)

	cartGroup := store.Group("/cart")
	cartGroup.Use(session)
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:key", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:key", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}

	checkoutGroup := store.Group("/checkout")
	checkoutGroup.Use(session)
	{
		checkoutGroup.POST("", checkoutHandler.PlaceOrder)
	}
}
