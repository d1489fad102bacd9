package domain

import (
	"context"
	"time"
)

// Cart domain errors.
var (
	ErrCartNotFound = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartExists   = &Error{Code: ECONFLICT, Message: "User already has an active cart"}
)

// CartStatus represents the lifecycle state of a cart.
type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusOrdered   CartStatus = "ordered"
	CartStatusCancelled CartStatus = "cancelled"
)

// CartItem is a (product reference, quantity) pair. Quantity is always >= 1
// for a persisted item.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart is a user's in-progress selection of products.
//
// Total is a cache of the pricing engine's computation over Items against
// live catalog prices. It is refreshed on every items mutation and never
// trusted as authoritative input.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	Status    CartStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItemInput is a caller-supplied line item.
type CartItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CartInput carries the caller-supplied fields for cart creation.
type CartInput struct {
	UserID string          `json:"userId" validate:"required"`
	Items  []CartItemInput `json:"items" validate:"dive"`
}

// CartUpdate carries a partial update. A non-nil Items replaces the existing
// item list wholesale (never merged) and forces a re-price.
type CartUpdate struct {
	UserID *string          `json:"userId" validate:"omitempty,min=1"`
	Items  *[]CartItemInput `json:"items" validate:"omitempty,dive"`
}

// CartService owns per-user cart state. Every mutation that touches items
// re-runs pricing; the total is never patched incrementally.
type CartService interface {
	// Get retrieves a cart by id.
	Get(ctx context.Context, id string) (*Cart, error)

	// List returns all carts.
	List(ctx context.Context) ([]Cart, error)

	// Create validates the input, prices the items against the catalog and
	// persists a new active cart. At most one active cart may exist per user.
	Create(ctx context.Context, input CartInput) (*Cart, error)

	// Update applies a partial update. If Items is supplied the list is
	// replaced wholesale and the total recomputed via the pricing engine.
	Update(ctx context.Context, id string, update CartUpdate) (*Cart, error)

	// Delete removes a cart (administrative delete).
	Delete(ctx context.Context, id string) error

	// ClearByUser empties the single cart belonging to userID (items to
	// empty, total to 0). Returns a not-found error when the user has no
	// cart; it never creates one.
	ClearByUser(ctx context.Context, userID string) (*Cart, error)
}
