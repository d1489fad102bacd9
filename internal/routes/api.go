package routes

import (
	"net/http"

	"shopcore/internal/handler"
	"shopcore/internal/router"
)

// APIDeps contains the handlers the API routes are wired to.
type APIDeps struct {
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	MetricsHandler http.Handler
}

// RegisterAPIRoutes registers the JSON API consumed by the HTTP edge.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Products
	r.Get("/api/products", deps.ProductHandler.List)
	r.Post("/api/products", deps.ProductHandler.Create)
	r.Get("/api/products/{id}", deps.ProductHandler.Get)
	r.Put("/api/products/{id}", deps.ProductHandler.Update)
	r.Delete("/api/products/{id}", deps.ProductHandler.Delete)

	// Carts
	r.Get("/api/carts", deps.CartHandler.List)
	r.Post("/api/carts", deps.CartHandler.Create)
	r.Get("/api/carts/{id}", deps.CartHandler.Get)
	r.Put("/api/carts/{id}", deps.CartHandler.Update)
	r.Delete("/api/carts/{id}", deps.CartHandler.Delete)
	r.Post("/api/carts/clear/{userId}", deps.CartHandler.Clear)

	// Orders
	r.Get("/api/orders", deps.OrderHandler.List)
	r.Post("/api/orders", deps.OrderHandler.Create)
	r.Get("/api/orders/{id}", deps.OrderHandler.Get)
	r.Put("/api/orders/{id}", deps.OrderHandler.Update)
	r.Delete("/api/orders/{id}", deps.OrderHandler.Delete)
	r.Get("/api/orders/user/{userId}", deps.OrderHandler.ListByUser)

	// Operational
	r.Get("/healthz", handler.Healthz)
	if deps.MetricsHandler != nil {
		r.Handle(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}
