package domain

import (
	"context"
	"strings"
	"time"
)

// Product domain errors.
var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
)

// Product represents a catalog item.
//
// IsAvailable is derived from Stock. It is recomputed before every persistence
// and never honored from caller input; DeriveAvailability is the single place
// the rule lives.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Stock       int       `json:"stock"`
	IsAvailable bool      `json:"isAvailable"`
	Ratings     []float64 `json:"ratings,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DeriveAvailability recomputes the availability flag from the stock level.
// Must be called before every write that may have touched Stock.
func (p *Product) DeriveAvailability() {
	p.IsAvailable = p.Stock > 0
}

// ProductInput carries the caller-supplied fields for product creation.
// There is no availability field: availability is derived from stock.
type ProductInput struct {
	Name        string    `json:"name" validate:"required,min=2"`
	Price       float64   `json:"price" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Description string    `json:"description" validate:"omitempty"`
	Category    string    `json:"category" validate:"omitempty"`
	Ratings     []float64 `json:"ratings" validate:"omitempty,dive,gte=0,lte=5"`
	ImageURL    string    `json:"imageUrl" validate:"omitempty"`
}

// Normalize trims surrounding whitespace from the free-text fields. Must run
// before validation so the name length rule applies to the trimmed value; a
// whitespace-only name trims to empty and fails the required check.
func (in *ProductInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

// ProductUpdate carries a partial update; nil fields are left untouched.
// Validation applies to supplied fields only.
type ProductUpdate struct {
	Name        *string    `json:"name" validate:"omitempty,min=2"`
	Price       *float64   `json:"price" validate:"omitempty,gte=0"`
	Stock       *int       `json:"stock" validate:"omitempty,gte=0"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Ratings     *[]float64 `json:"ratings" validate:"omitempty,dive,gte=0,lte=5"`
	ImageURL    *string    `json:"imageUrl"`
}

// Normalize trims surrounding whitespace from the supplied free-text fields.
// A supplied whitespace-only name trims to empty and fails min=2, since the
// pointer is non-nil.
func (u *ProductUpdate) Normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(u.Name)
	trim(u.Description)
	trim(u.Category)
	trim(u.ImageURL)
}

// CatalogService is the authoritative source of current product
// price/stock/availability.
type CatalogService interface {
	// Get retrieves a product by id.
	Get(ctx context.Context, id string) (*Product, error)

	// List returns all products.
	List(ctx context.Context) ([]Product, error)

	// Create validates the input and persists a new product with derived
	// availability.
	Create(ctx context.Context, input ProductInput) (*Product, error)

	// Update applies a partial update, re-deriving availability before
	// persistence. The input type has no availability field, so callers
	// cannot set one.
	Update(ctx context.Context, id string, update ProductUpdate) (*Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id string) error
}
