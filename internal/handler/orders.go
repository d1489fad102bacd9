package handler

import (
	"net/http"

	"shopcore/internal/domain"
)

// OrderHandler handles the order routes.
type OrderHandler struct {
	orders domain.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders domain.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List handles GET /api/orders with an optional ?userId= filter.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{UserID: r.URL.Query().Get("userId")}

	orders, err := h.orders.List(r.Context(), filter)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	RespondJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, order)
}

// Create handles POST /api/orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.OrderInput
	if err := decodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.orders.Create(r.Context(), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   order,
	})
}

// Update handles PUT /api/orders/{id} (status and payment method only).
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update domain.OrderStatusUpdate
	if err := decodeJSON(r, &update); err != nil {
		RespondError(w, r, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), r.PathValue("id"), update)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Order updated successfully",
		"order":   order,
	})
}

// Delete handles DELETE /api/orders/{id}
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Order deleted successfully",
	})
}

// ListByUser handles GET /api/orders/user/{userId}
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListByUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, orders)
}
