package handler

import (
	"net/http"

	"shopcore/internal/domain"
)

// ProductHandler handles the product catalog routes.
type ProductHandler struct {
	catalog domain.CatalogService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog domain.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	RespondJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := decodeJSON(r, &input); err != nil {
		RespondError(w, r, err)
		return
	}

	product, err := h.catalog.Create(r.Context(), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "Product created successfully",
		"product": product,
	})
}

// Update handles PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update domain.ProductUpdate
	if err := decodeJSON(r, &update); err != nil {
		RespondError(w, r, err)
		return
	}

	product, err := h.catalog.Update(r.Context(), r.PathValue("id"), update)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Product updated successfully",
		"product": product,
	})
}

// Delete handles DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), r.PathValue("id")); err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Product deleted successfully",
	})
}
