package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shopcore/internal/domain"
	"shopcore/internal/pricing"
	"shopcore/internal/store"
	"shopcore/internal/telemetry"
)

// CartService implements domain.CartService. Every mutation that touches a
// cart's item list re-runs the pricing engine; the stored total is only ever
// a cache of that computation.
type CartService struct {
	carts   store.Collection[domain.Cart]
	pricer  *pricing.Engine
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

// Compile-time check that CartService implements domain.CartService.
var _ domain.CartService = (*CartService)(nil)

// NewCartService creates a store-backed cart manager that prices through
// the given engine.
func NewCartService(carts store.Collection[domain.Cart], pricer *pricing.Engine, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *CartService {
	return &CartService{
		carts:   carts,
		pricer:  pricer,
		metrics: metrics,
		logger:  logger,
	}
}

// Get retrieves a cart by id.
func (s *CartService) Get(ctx context.Context, id string) (*domain.Cart, error) {
	cart, err := s.carts.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound("cart.get", "cart", id)
		}
		return nil, domain.StoreFault(err, "cart.get", "failed to fetch cart")
	}
	return cart, nil
}

// List returns all carts.
func (s *CartService) List(ctx context.Context) ([]domain.Cart, error) {
	carts, err := s.carts.Find(ctx, nil)
	if err != nil {
		return nil, domain.StoreFault(err, "cart.list", "failed to list carts")
	}
	return carts, nil
}

// Create validates the input, prices the items and persists a new active
// cart. A user may hold at most one active cart; creating a second one is a
// conflict, which keeps ClearByUser unambiguous.
func (s *CartService) Create(ctx context.Context, input domain.CartInput) (*domain.Cart, error) {
	if err := domain.Validate("cart.create", input); err != nil {
		return nil, err
	}

	_, err := s.carts.FindOne(ctx, store.Filter{
		"userId": input.UserID,
		"status": domain.CartStatusActive,
	})
	if err == nil {
		return nil, domain.ErrCartExists
	}
	if !store.IsNotFound(err) {
		return nil, domain.StoreFault(err, "cart.create", "failed to check for existing cart")
	}

	items := toCartItems(input.Items)
	quote, err := s.pricer.Price(ctx, items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cart := domain.Cart{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		Items:     items,
		Total:     quote.Total,
		Status:    domain.CartStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.carts.Insert(ctx, cart); err != nil {
		return nil, domain.StoreFault(err, "cart.create", "failed to save cart")
	}

	s.metrics.RecordCartCreated(cart.Total)
	s.logger.Info("cart created",
		"cart_id", cart.ID,
		"user_id", cart.UserID,
		"total", cart.Total,
	)
	return &cart, nil
}

// Update applies a partial update. A supplied item list replaces the
// existing one wholesale and forces a re-price; the total is never patched
// incrementally.
func (s *CartService) Update(ctx context.Context, id string, update domain.CartUpdate) (*domain.Cart, error) {
	if err := domain.Validate("cart.update", update); err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound("cart.update", "cart", id)
		}
		return nil, domain.StoreFault(err, "cart.update", "failed to fetch cart")
	}

	if update.Items != nil {
		items := toCartItems(*update.Items)
		quote, err := s.pricer.Price(ctx, items)
		if err != nil {
			return nil, err
		}
		cart.Items = items
		cart.Total = quote.Total
	}
	if update.UserID != nil {
		cart.UserID = *update.UserID
	}
	cart.UpdatedAt = time.Now().UTC()

	updated, err := s.carts.FindByIDAndUpdate(ctx, id, *cart)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound("cart.update", "cart", id)
		}
		return nil, domain.StoreFault(err, "cart.update", "failed to save cart")
	}
	return updated, nil
}

// Delete removes a cart. This is the administrative delete; the normal
// lifecycle only ever empties a cart.
func (s *CartService) Delete(ctx context.Context, id string) error {
	if _, err := s.carts.FindByIDAndDelete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return domain.NotFound("cart.delete", "cart", id)
		}
		return domain.StoreFault(err, "cart.delete", "failed to delete cart")
	}
	return nil
}

// ClearByUser empties the cart belonging to userID. It returns a not-found
// signal when the user has no cart; it never creates one.
func (s *CartService) ClearByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	cleared, err := s.carts.FindOneAndUpdate(ctx, store.Filter{"userId": userID}, func(c *domain.Cart) {
		c.Items = []domain.CartItem{}
		c.Total = 0
		c.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound("cart.clear", "cart for user", userID)
		}
		return nil, domain.StoreFault(err, "cart.clear", "failed to clear cart")
	}

	s.metrics.RecordCartCleared()
	s.logger.Info("cart cleared", "cart_id", cleared.ID, "user_id", userID)
	return cleared, nil
}

func toCartItems(inputs []domain.CartItemInput) []domain.CartItem {
	items := make([]domain.CartItem, len(inputs))
	for i, in := range inputs {
		items[i] = domain.CartItem{ProductID: in.ProductID, Quantity: in.Quantity}
	}
	return items
}
