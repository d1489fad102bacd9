package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"shopcore/internal/domain"
	"shopcore/internal/events"
	"shopcore/internal/store"
	"shopcore/internal/telemetry"
)

// OrderService implements domain.OrderService.
//
// Order creation is a two-phase operation: the order insert and the cart
// reset are separate store writes. A reader between the two phases can
// observe the new order alongside a still-populated cart; a cart-reset
// failure after the order is persisted is logged and counted, never
// surfaced, because order creation is not contingent on cart existence.
type OrderService struct {
	orders    store.Collection[domain.Order]
	carts     store.Collection[domain.Cart]
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// Compile-time check that OrderService implements domain.OrderService.
var _ domain.OrderService = (*OrderService)(nil)

// NewOrderService creates a store-backed order fulfillment service.
func NewOrderService(
	orders store.Collection[domain.Order],
	carts store.Collection[domain.Cart],
	publisher events.Publisher,
	metrics *telemetry.BusinessMetrics,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Create runs the fulfillment flow:
//
//  1. Validate shape (user, items, declared total, payment method).
//  2. Recompute the total from the SUBMITTED line items. The client is the
//     price source for an order; the catalog is not consulted, unlike carts
//     which always re-price from live data.
//  3. Compare against the declared total within domain.TotalTolerance; a
//     mismatch rejects the submission with nothing persisted.
//  4. Persist the order with the submitted items as an immutable snapshot.
//  5. Reset the user's cart. A missing cart is a no-op; a store fault here
//     is logged but does not fail the already-created order.
func (s *OrderService) Create(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	if err := domain.Validate("order.create", input); err != nil {
		s.metrics.RecordOrderRejected("validation")
		return nil, err
	}

	var calculated float64
	items := make([]domain.OrderItem, len(input.Items))
	for i, in := range input.Items {
		items[i] = domain.OrderItem{ProductID: in.ProductID, Quantity: in.Quantity, Price: in.Price}
		calculated += in.Price * float64(in.Quantity)
	}

	if math.Abs(calculated-input.TotalAmount) > domain.TotalTolerance {
		s.metrics.RecordOrderRejected("total_mismatch")
		return nil, domain.TotalMismatch("order.create", input.TotalAmount, calculated)
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:              uuid.New().String(),
		UserID:          input.UserID,
		Items:           items,
		TotalAmount:     calculated,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   domain.PaymentStatusPending,
		OrderStatus:     domain.OrderStatusProcessing,
		OrderDate:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, domain.StoreFault(err, "order.create", "failed to save order")
	}

	s.resetCart(ctx, &order)

	if err := s.publisher.OrderCreated(ctx, &order); err != nil {
		s.logger.Warn("order created event publish failed",
			"order_id", order.ID,
			"error", err,
		)
	}

	s.metrics.RecordOrderCreated(string(order.PaymentMethod), order.TotalAmount, len(order.Items))
	s.logger.Info("order created",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total", order.TotalAmount,
		"payment_method", order.PaymentMethod,
	)
	return &order, nil
}

// resetCart empties the originating cart after an order is persisted.
// Absence of a cart is not an error; a fault leaves the documented
// intermediate state (order persisted, cart untouched).
func (s *OrderService) resetCart(ctx context.Context, order *domain.Order) {
	cleared, err := s.carts.FindOneAndUpdate(ctx, store.Filter{"userId": order.UserID}, func(c *domain.Cart) {
		c.Items = []domain.CartItem{}
		c.Total = 0
		c.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		if store.IsNotFound(err) {
			return
		}
		s.metrics.RecordCartResetMissed()
		s.logger.Error("cart reset after order creation failed",
			"order_id", order.ID,
			"user_id", order.UserID,
			"error", err,
		)
		return
	}

	s.metrics.RecordCartCleared()
	if err := s.publisher.CartCleared(ctx, cleared); err != nil {
		s.logger.Warn("cart cleared event publish failed",
			"cart_id", cleared.ID,
			"error", err,
		)
	}
}

// Get retrieves an order by id.
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound("order.get", "order", id)
		}
		return nil, domain.StoreFault(err, "order.get", "failed to fetch order")
	}
	return order, nil
}

// List returns orders matching the filter, all orders for a zero filter.
func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var cond store.Filter
	if filter.UserID != "" {
		cond = store.Filter{"userId": filter.UserID}
	}

	orders, err := s.orders.Find(ctx, cond)
	if err != nil {
		return nil, domain.StoreFault(err, "order.list", "failed to list orders")
	}
	return orders, nil
}

// ListByUser returns the user's orders, or a not-found error when the user
// has none.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.Find(ctx, store.Filter{"userId": userID})
	if err != nil {
		return nil, domain.StoreFault(err, "order.list_by_user", "failed to list orders")
	}
	if len(orders) == 0 {
		return nil, domain.NotFound("order.list_by_user", "orders for user", userID)
	}
	return orders, nil
}

// UpdateStatus applies a partial status/payment-method update. Line items
// and TotalAmount are immutable after creation and never touched here.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, update domain.OrderStatusUpdate) (*domain.Order, error) {
	if err := domain.Validate("order.update_status", update); err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound("order.update_status", "order", id)
		}
		return nil, domain.StoreFault(err, "order.update_status", "failed to fetch order")
	}

	if update.OrderStatus != nil {
		order.OrderStatus = *update.OrderStatus
	}
	if update.PaymentStatus != nil {
		order.PaymentStatus = *update.PaymentStatus
	}
	if update.PaymentMethod != nil {
		order.PaymentMethod = *update.PaymentMethod
	}
	order.UpdatedAt = time.Now().UTC()

	updated, err := s.orders.FindByIDAndUpdate(ctx, id, *order)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound("order.update_status", "order", id)
		}
		return nil, domain.StoreFault(err, "order.update_status", "failed to save order")
	}
	return updated, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if _, err := s.orders.FindByIDAndDelete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return domain.NotFound("order.delete", "order", id)
		}
		return domain.StoreFault(err, "order.delete", "failed to delete order")
	}
	return nil
}
