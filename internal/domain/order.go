package domain

import (
	"context"
	"time"
)

// Order domain errors.
var (
	ErrOrderNotFound = &Error{Code: ENOTFOUND, Message: "Order not found"}
)

// TotalTolerance is the maximum allowed absolute discrepancy, in currency
// units, between a declared and computed order total before rejection. It
// exists to absorb floating-point rounding, not price disagreements.
const TotalTolerance = 0.01

// PaymentMethod is the payment-method tag carried on an order. Gateway
// integration is out of scope; only the tag is tracked.
type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodCashOnDelivery PaymentMethod = "cash-on-delivery"
	PaymentMethodPaypal         PaymentMethod = "paypal"
	PaymentMethodMobileWallet   PaymentMethod = "mobile-wallet"
)

// PaymentStatus represents the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// OrderStatus represents the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderItem is a line item with a price snapshot frozen at order-creation
// time, independent of later catalog changes.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a finalized, priced snapshot of a cart. Items and TotalAmount are
// immutable after creation; only the payment method and the status fields may
// change.
type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	Items           []OrderItem   `json:"items"`
	TotalAmount     float64       `json:"totalAmount"`
	ShippingAddress string        `json:"shippingAddress,omitempty"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	OrderStatus     OrderStatus   `json:"orderStatus"`
	OrderDate       time.Time     `json:"orderDate"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// OrderItemInput is a caller-supplied line item. The price is the client's
// declared snapshot: order creation validates the declared total against
// these prices, not against a fresh catalog lookup.
type OrderItemInput struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// OrderInput carries the caller-supplied fields for order creation.
type OrderInput struct {
	UserID          string           `json:"userId" validate:"required"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	TotalAmount     float64          `json:"totalAmount" validate:"required,gt=0"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod" validate:"required,oneof=card cash-on-delivery paypal mobile-wallet"`
	ShippingAddress string           `json:"shippingAddress" validate:"omitempty"`
}

// OrderStatusUpdate carries a partial post-creation update. Line items and
// TotalAmount are immutable after creation, so they have no fields here.
type OrderStatusUpdate struct {
	OrderStatus   *OrderStatus   `json:"orderStatus" validate:"omitempty,oneof=processing shipped delivered cancelled"`
	PaymentStatus *PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=pending paid failed"`
	PaymentMethod *PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=card cash-on-delivery paypal mobile-wallet"`
}

// OrderFilter narrows order listings. Zero value means no filtering.
type OrderFilter struct {
	UserID string
}

// OrderService validates client-submitted orders against their declared
// totals, persists them, and clears the originating cart.
type OrderService interface {
	// Create runs the full fulfillment flow: shape validation, total
	// recomputation from the submitted line items, tolerance comparison,
	// persistence, then cart reset for the user (a missing cart is a no-op).
	// Any failure before persistence writes nothing.
	Create(ctx context.Context, input OrderInput) (*Order, error)

	// Get retrieves an order by id.
	Get(ctx context.Context, id string) (*Order, error)

	// List returns orders matching the filter, all orders for a zero filter.
	List(ctx context.Context, filter OrderFilter) ([]Order, error)

	// ListByUser returns the user's orders, or a not-found error when the
	// user has none.
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	// UpdateStatus applies a partial status/payment-method update. The line
	// items and total are never recomputed.
	UpdateStatus(ctx context.Context, id string, update OrderStatusUpdate) (*Order, error)

	// Delete removes an order.
	Delete(ctx context.Context, id string) error
}
