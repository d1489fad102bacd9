package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/internal/domain"
	"shopcore/internal/store"
)

func newProductService() (*ProductService, *store.Memory[domain.Product]) {
	products := store.NewMemory[domain.Product]()
	return NewProductService(products, nil, testLogger()), products
}

func TestProductService_Create(t *testing.T) {
	svc, _ := newProductService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.ProductInput{Name: "Mug", Price: 9.5, Stock: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Mug", created.Name)
	assert.True(t, created.IsAvailable, "positive stock must derive available")
	assert.False(t, created.CreatedAt.IsZero())

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
}

func TestProductService_Create_ZeroStockUnavailable(t *testing.T) {
	svc, _ := newProductService()

	created, err := svc.Create(context.Background(), domain.ProductInput{Name: "Lamp", Price: 20, Stock: 0})
	require.NoError(t, err)
	assert.False(t, created.IsAvailable)
}

func TestProductService_Create_TrimsTextFields(t *testing.T) {
	svc, _ := newProductService()

	created, err := svc.Create(context.Background(), domain.ProductInput{
		Name:     "  Mug  ",
		Price:    9.5,
		Stock:    3,
		Category: " kitchen ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mug", created.Name)
	assert.Equal(t, "kitchen", created.Category)
}

func TestProductService_Create_WhitespaceOnlyNameRejected(t *testing.T) {
	svc, _ := newProductService()

	_, err := svc.Create(context.Background(), domain.ProductInput{Name: "   ", Price: 1, Stock: 1})
	fields := domain.GetValidationFields(err)
	require.NotNil(t, fields, "expected validation error, got %v", err)
	assert.Contains(t, fields, "name")
}

func TestProductService_Update_WhitespaceOnlyNameRejected(t *testing.T) {
	svc, _ := newProductService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.ProductInput{Name: "Mug", Price: 9.5, Stock: 3})
	require.NoError(t, err)

	blank := "   "
	_, err = svc.Update(ctx, created.ID, domain.ProductUpdate{Name: &blank})
	fields := domain.GetValidationFields(err)
	require.NotNil(t, fields, "expected validation error, got %v", err)
	assert.Contains(t, fields, "name")

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mug", stored.Name)
}

func TestProductService_Update_TrimsSuppliedName(t *testing.T) {
	svc, _ := newProductService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.ProductInput{Name: "Mug", Price: 9.5, Stock: 3})
	require.NoError(t, err)

	padded := "  Big Mug  "
	updated, err := svc.Update(ctx, created.ID, domain.ProductUpdate{Name: &padded})
	require.NoError(t, err)
	assert.Equal(t, "Big Mug", updated.Name)
}

func TestProductService_Create_Invalid(t *testing.T) {
	svc, _ := newProductService()

	_, err := svc.Create(context.Background(), domain.ProductInput{Name: "x", Price: 1, Stock: 1})
	fields := domain.GetValidationFields(err)
	require.NotNil(t, fields, "expected validation error, got %v", err)
	assert.Contains(t, fields, "name")
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestProductService_Get_NotFound(t *testing.T) {
	svc, _ := newProductService()

	_, err := svc.Get(context.Background(), "ghost")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestProductService_Update_RederivesAvailability(t *testing.T) {
	svc, _ := newProductService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.ProductInput{Name: "Mug", Price: 9.5, Stock: 3})
	require.NoError(t, err)

	zero := 0
	updated, err := svc.Update(ctx, created.ID, domain.ProductUpdate{Stock: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.False(t, updated.IsAvailable, "zero stock must derive unavailable")

	five := 5
	updated, err = svc.Update(ctx, created.ID, domain.ProductUpdate{Stock: &five})
	require.NoError(t, err)
	assert.True(t, updated.IsAvailable, "restock must derive available")
}

func TestProductService_Update_PartialFields(t *testing.T) {
	svc, _ := newProductService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.ProductInput{Name: "Mug", Price: 9.5, Stock: 3, Category: "kitchen"})
	require.NoError(t, err)

	price := 12.0
	updated, err := svc.Update(ctx, created.ID, domain.ProductUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 12.0, updated.Price)
	assert.Equal(t, "Mug", updated.Name, "unsupplied fields keep their value")
	assert.Equal(t, "kitchen", updated.Category)
	assert.Equal(t, 3, updated.Stock)
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc, _ := newProductService()

	name := "New Name"
	_, err := svc.Update(context.Background(), "ghost", domain.ProductUpdate{Name: &name})
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestProductService_Delete(t *testing.T) {
	svc, _ := newProductService()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.ProductInput{Name: "Mug", Price: 9.5, Stock: 3})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))

	err = svc.Delete(ctx, created.ID)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err), "deleting a missing product is not-found, not a fault")
}

func TestProductService_List(t *testing.T) {
	svc, _ := newProductService()
	ctx := context.Background()

	for _, name := range []string{"Mug", "Lamp", "Plate"} {
		_, err := svc.Create(ctx, domain.ProductInput{Name: name, Price: 1, Stock: 1})
		require.NoError(t, err)
	}

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestProductService_StoreFault(t *testing.T) {
	svc := NewProductService(faultCollection[domain.Product]{}, nil, testLogger())
	ctx := context.Background()

	_, err := svc.Get(ctx, "p1")
	assert.Equal(t, domain.ESTORE, domain.ErrorCode(err))

	_, err = svc.Create(ctx, domain.ProductInput{Name: "Mug", Price: 1, Stock: 1})
	assert.Equal(t, domain.ESTORE, domain.ErrorCode(err))

	err = svc.Delete(ctx, "p1")
	assert.Equal(t, domain.ESTORE, domain.ErrorCode(err))
}
