// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import (
	"github.com/go-chi/chi/v5"

	"github.com/trendhive/trendhive/internal/platform/middleware"
)

// Handler implements the commerce HTTP endpoints.
//
// # Scope
//
// The public catalog plus the session-scoped bag and wishlist, all mounted
// under /api/products. Static segments (cart, wishlist) are registered on
// the same router as the {id} wildcard; chi resolves static routes first.
type Handler struct {
	commerceService *Service
	authenticator   *middleware.Authenticator
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{
		commerceService: service,
		authenticator:   authenticator,
	}
}

// Routes returns the /api/products router.
//
// # Endpoints
//   - GET  /            : Paginated catalog with search + category filter.
//   - POST /            : Create a product (session required).
//   - GET/PUT/DELETE /{id}
//   - /cart/...         : Bag reconciliation (session required).
//   - /wishlist/...     : Wishlist (session required).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Session-scoped sub-surfaces first so "cart" and "wishlist" never
	// fall through to the {id} wildcard.
	router.Route("/cart", func(cart chi.Router) {
		cart.Use(handler.authenticator.RequireAuth)
		cart.Get("/", handler.bagSnapshot)
		cart.Delete("/", handler.clearBag)
		cart.Post("/{id}", handler.addToBag)
		cart.Put("/{id}", handler.updateBagItem)
		cart.Delete("/{id}", handler.removeFromBag)
	})

	router.Route("/wishlist", func(wishlist chi.Router) {
		wishlist.Use(handler.authenticator.RequireAuth)
		wishlist.Get("/", handler.wishlist)
		wishlist.Post("/{id}", handler.addToWishlist)
		wishlist.Delete("/{id}", handler.removeFromWishlist)
	})

	// Catalog
	router.Get("/", handler.listProducts)
	router.Get("/{id}", handler.getProduct)

	router.Group(func(protected chi.Router) {
		protected.Use(handler.authenticator.RequireAuth)
		protected.Post("/", handler.createProduct)
		protected.Put("/{id}", handler.updateProduct)
		protected.Delete("/{id}", handler.deleteProduct)
	})

	return router
}
