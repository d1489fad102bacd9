package handler

import (
	"net/http"

	"shopcore/internal/domain"
)

// CartHandler handles the cart routes.
type CartHandler struct {
	carts domain.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts domain.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// List handles GET /api/carts
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	carts, err := h.carts.List(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	if carts == nil {
		carts = []domain.Cart{}
	}
	RespondJSON(w, http.StatusOK, carts)
}

// Get handles GET /api/carts/{id}
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, cart)
}

// Create handles POST /api/carts
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CartInput
	if err := decodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	cart, err := h.carts.Create(r.Context(), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "Cart created successfully",
		"cart":    cart,
	})
}

// Update handles PUT /api/carts/{id}
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update domain.CartUpdate
	if err := decodeJSON(r, &update); err != nil {
		RespondError(w, r, err)
		return
	}

	cart, err := h.carts.Update(r.Context(), r.PathValue("id"), update)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Cart updated successfully",
		"cart":    cart,
	})
}

// Delete handles DELETE /api/carts/{id}
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Delete(r.Context(), r.PathValue("id")); err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Cart deleted successfully",
	})
}

// Clear handles POST /api/carts/clear/{userId}
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.ClearByUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Cart cleared successfully",
		"cart":    cart,
	})
}
