// Package handler exposes the catalog and cart engine over HTTP. It owns
// session-id issuance (an opaque cookie) and JSON encoding; all domain
// decisions stay in the domain packages.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SCWINCK/CatDist/internal/domain/cart"
	"github.com/SCWINCK/CatDist/internal/domain/catalog"
)

// ReloadFunc rebuilds and publishes a fresh catalog index. It returns the
// published index and the row errors collected during the rebuild.
type ReloadFunc func(ctx context.Context) (*catalog.Index, []catalog.RowError, error)

// Handler wires the HTTP surface to the catalog holder and cart store.
type Handler struct {
	catalog *catalog.Holder
	carts   *cart.Store
	reload  ReloadFunc
}

// New constructs a Handler. reload may be nil, in which case the admin reload
// endpoint responds 503.
func New(holder *catalog.Holder, carts *cart.Store, reload ReloadFunc) *Handler {
	return &Handler{
		catalog: holder,
		carts:   carts,
		reload:  reload,
	}
}

// Routes returns the full API router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/suppliers", h.listSuppliers)
		r.Get("/products", h.listProducts)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Get("/export", h.exportCart)
			r.Post("/items", h.addItem)
			r.Put("/items/{productID}", h.setItemQuantity)
			r.Delete("/items/{productID}", h.removeItem)
			r.Post("/coupon", h.applyCoupon)
			r.Delete("/coupon", h.clearCoupon)
			r.Put("/shipping", h.setShipping)
		})

		r.Post("/admin/reload", h.reloadCatalog)
	})
	return r
}
