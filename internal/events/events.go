// Package events publishes domain events for downstream consumers
// (fulfillment workers, analytics). Publishing is best-effort: a failed
// publish is logged by the caller and never fails the originating request.
package events

import (
	"context"

	"shopcore/internal/domain"
)

// Subjects for published events.
const (
	SubjectOrderCreated = "shopcore.order.created"
	SubjectCartCleared  = "shopcore.cart.cleared"
)

// Publisher emits domain events.
type Publisher interface {
	// OrderCreated announces a newly persisted order.
	OrderCreated(ctx context.Context, order *domain.Order) error

	// CartCleared announces that a user's cart was emptied.
	CartCleared(ctx context.Context, cart *domain.Cart) error

	// Close releases the underlying connection.
	Close()
}

// Noop is the publisher used when no broker is configured.
type Noop struct{}

// OrderCreated implements Publisher.
func (Noop) OrderCreated(context.Context, *domain.Order) error { return nil }

// CartCleared implements Publisher.
func (Noop) CartCleared(context.Context, *domain.Cart) error { return nil }

// Close implements Publisher.
func (Noop) Close() {}
