package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/internal/domain"
	"shopcore/internal/pricing"
	"shopcore/internal/store"
)

// cartFixture wires a cart service against in-memory stores with a seeded
// catalog: p1 at 10.00, p2 at 2.50.
type cartFixture struct {
	carts    *store.Memory[domain.Cart]
	products *ProductService
	svc      *CartService
	ids      map[string]string
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	products := NewProductService(store.NewMemory[domain.Product](), nil, testLogger())
	carts := store.NewMemory[domain.Cart]()
	svc := NewCartService(carts, pricing.NewEngine(products), nil, testLogger())

	f := &cartFixture{carts: carts, products: products, svc: svc, ids: make(map[string]string)}
	f.seedProduct(t, "p1", 10)
	f.seedProduct(t, "p2", 2.5)
	return f
}

func (f *cartFixture) seedProduct(t *testing.T, name string, price float64) *domain.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), domain.ProductInput{Name: "Product " + name, Price: price, Stock: 10})
	require.NoError(t, err)
	f.ids[name] = p.ID
	return p
}

func TestCartService_Create_PricesItems(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	cart, err := f.svc.Create(ctx, domain.CartInput{
		UserID: "u1",
		Items: []domain.CartItemInput{
			{ProductID: f.ids["p1"], Quantity: 2},
			{ProductID: f.ids["p2"], Quantity: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, cart.Total)
	assert.Equal(t, domain.CartStatusActive, cart.Status)
	assert.Len(t, cart.Items, 2)
}

func TestCartService_Create_EmptyCart(t *testing.T) {
	f := newCartFixture(t)

	cart, err := f.svc.Create(context.Background(), domain.CartInput{UserID: "u1"})
	require.NoError(t, err)
	assert.Zero(t, cart.Total)
	assert.Empty(t, cart.Items)
}

func TestCartService_Create_UnknownProduct(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CartInput{
		UserID: "u1",
		Items:  []domain.CartItemInput{{ProductID: "ghost", Quantity: 1}},
	})
	id, ok := domain.IsProductNotFound(err)
	require.True(t, ok, "expected ProductNotFoundError, got %v", err)
	assert.Equal(t, "ghost", id)
}

func TestCartService_Create_SecondActiveCartConflicts(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CartInput{UserID: "u1"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, domain.CartInput{UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrCartExists)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	// A different user is unaffected.
	_, err = f.svc.Create(ctx, domain.CartInput{UserID: "u2"})
	assert.NoError(t, err)
}

func TestCartService_Update_ReplacesItemsAndReprices(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	cart, err := f.svc.Create(ctx, domain.CartInput{
		UserID: "u1",
		Items:  []domain.CartItemInput{{ProductID: f.ids["p1"], Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 20.0, cart.Total)

	newItems := []domain.CartItemInput{{ProductID: f.ids["p2"], Quantity: 2}}
	updated, err := f.svc.Update(ctx, cart.ID, domain.CartUpdate{Items: &newItems})
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.Total, "total must track the new item list")
	require.Len(t, updated.Items, 1, "the item list is replaced, not merged")
	assert.Equal(t, f.ids["p2"], updated.Items[0].ProductID)
}

func TestCartService_Update_RepriceFailureLeavesCartUntouched(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	cart, err := f.svc.Create(ctx, domain.CartInput{
		UserID: "u1",
		Items:  []domain.CartItemInput{{ProductID: f.ids["p1"], Quantity: 1}},
	})
	require.NoError(t, err)

	badItems := []domain.CartItemInput{{ProductID: "ghost", Quantity: 1}}
	_, err = f.svc.Update(ctx, cart.ID, domain.CartUpdate{Items: &badItems})
	_, ok := domain.IsProductNotFound(err)
	require.True(t, ok, "expected ProductNotFoundError, got %v", err)

	stored, err := f.svc.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, stored.Total)
	assert.Len(t, stored.Items, 1)
}

func TestCartService_Update_TotalNeverPatchedDirectly(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	cart, err := f.svc.Create(ctx, domain.CartInput{
		UserID: "u1",
		Items:  []domain.CartItemInput{{ProductID: f.ids["p1"], Quantity: 1}},
	})
	require.NoError(t, err)

	// Only the owner moves; items are untouched, so the total stands.
	owner := "u2"
	updated, err := f.svc.Update(ctx, cart.ID, domain.CartUpdate{UserID: &owner})
	require.NoError(t, err)
	assert.Equal(t, "u2", updated.UserID)
	assert.Equal(t, 10.0, updated.Total)
}

func TestCartService_ClearByUser(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	cart, err := f.svc.Create(ctx, domain.CartInput{
		UserID: "u1",
		Items:  []domain.CartItemInput{{ProductID: f.ids["p1"], Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 30.0, cart.Total)

	cleared, err := f.svc.ClearByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)
	assert.Zero(t, cleared.Total)
	assert.Equal(t, cart.ID, cleared.ID, "the cart record survives, only its contents reset")

	stored, err := f.svc.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
	assert.Zero(t, stored.Total)
}

func TestCartService_ClearByUser_NoCart(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.svc.ClearByUser(context.Background(), "nobody")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestCartService_Delete(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	cart, err := f.svc.Create(ctx, domain.CartInput{UserID: "u1"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, cart.ID))

	_, err = f.svc.Get(ctx, cart.ID)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestCartService_StoreFault(t *testing.T) {
	products := NewProductService(store.NewMemory[domain.Product](), nil, testLogger())
	svc := NewCartService(faultCollection[domain.Cart]{}, pricing.NewEngine(products), nil, testLogger())
	ctx := context.Background()

	_, err := svc.Get(ctx, "c1")
	assert.Equal(t, domain.ESTORE, domain.ErrorCode(err))

	_, err = svc.Create(ctx, domain.CartInput{UserID: "u1"})
	assert.Equal(t, domain.ESTORE, domain.ErrorCode(err))

	_, err = svc.ClearByUser(ctx, "u1")
	assert.Equal(t, domain.ESTORE, domain.ErrorCode(err))
}
