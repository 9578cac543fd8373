package handler

import (
	"net/http"
	"time"

	"scentra-be/internal/logger"
	"scentra-be/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Category *CategoryHandler
	Banner   *BannerHandler
	Cart     *CartHandler
	Wishlist *WishlistHandler
	Address  *AddressHandler
	Order    *OrderHandler
}

// NewRouter wires the full HTTP surface.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Get("/products", h.Product.List)
		r.Get("/products/{id}", h.Product.Get)
		r.Get("/categories", h.Category.List)
		r.Get("/banners", h.Banner.List)

		r.Post("/orders", h.Order.Place)
		r.Get("/orders/number/{orderNumber}", h.Order.GetByNumber)
		r.Get("/orders", h.Order.ListByEmail)

		// Authenticated storefront routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/auth/me", h.Auth.Me)

			r.Get("/cart", h.Cart.Get)
			r.Post("/cart", h.Cart.Add)
			r.Patch("/cart/{id}", h.Cart.UpdateQuantity)
			r.Delete("/cart/{id}", h.Cart.Remove)
			r.Delete("/cart", h.Cart.Clear)

			r.Get("/wishlist", h.Wishlist.List)
			r.Post("/wishlist", h.Wishlist.Add)
			r.Delete("/wishlist/{productId}", h.Wishlist.Remove)

			r.Get("/addresses", h.Address.List)
			r.Post("/addresses", h.Address.Create)
			r.Delete("/addresses/{id}", h.Address.Delete)
		})

		// Admin routes.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/products", h.Product.Create)
			r.Put("/products/{id}", h.Product.Update)
			r.Delete("/products/{id}", h.Product.Delete)

			r.Post("/categories", h.Category.Create)

			r.Get("/banners", h.Banner.AdminList)
			r.Post("/banners", h.Banner.Create)
			r.Put("/banners/{id}", h.Banner.SetActive)
			r.Delete("/banners/{id}", h.Banner.Delete)

			r.Get("/orders", h.Order.AdminList)
			r.Get("/orders/stats", h.Order.AdminStats)
			r.Patch("/orders/{id}/status", h.Order.AdminUpdateStatus)
			r.Delete("/orders/{id}", h.Order.AdminDelete)
		})
	})

	return r
}
