package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shopcore/internal/domain"
	"shopcore/internal/store"
	"shopcore/internal/telemetry"
)

// ProductService implements domain.CatalogService over the record store.
type ProductService struct {
	products store.Collection[domain.Product]
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
}

// Compile-time check that ProductService implements domain.CatalogService.
var _ domain.CatalogService = (*ProductService)(nil)

// NewProductService creates a store-backed product catalog.
func NewProductService(products store.Collection[domain.Product], metrics *telemetry.BusinessMetrics, logger *slog.Logger) *ProductService {
	return &ProductService{
		products: products,
		metrics:  metrics,
		logger:   logger,
	}
}

// Get retrieves a product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound("product.get", "product", id)
		}
		return nil, domain.StoreFault(err, "product.get", "failed to fetch product")
	}
	return product, nil
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.Find(ctx, nil)
	if err != nil {
		return nil, domain.StoreFault(err, "product.list", "failed to list products")
	}
	return products, nil
}

// Create validates the input and persists a new product. Availability is
// derived from stock before the write; the input type carries no
// availability field, so a caller cannot supply one.
func (s *ProductService) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	input.Normalize()
	if err := domain.Validate("product.create", input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Price:       input.Price,
		Stock:       input.Stock,
		Description: input.Description,
		Category:    input.Category,
		Ratings:     input.Ratings,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	product.DeriveAvailability()

	if err := s.products.Insert(ctx, product); err != nil {
		return nil, domain.StoreFault(err, "product.create", "failed to save product")
	}

	s.metrics.RecordProductCreated()
	s.logger.Info("product created",
		"product_id", product.ID,
		"price", product.Price,
		"stock", product.Stock,
	)
	return &product, nil
}

// Update applies a partial update, validating only the supplied fields and
// re-deriving availability before persistence.
func (s *ProductService) Update(ctx context.Context, id string, update domain.ProductUpdate) (*domain.Product, error) {
	update.Normalize()
	if err := domain.Validate("product.update", update); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound("product.update", "product", id)
		}
		return nil, domain.StoreFault(err, "product.update", "failed to fetch product")
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Ratings != nil {
		product.Ratings = *update.Ratings
	}
	if update.ImageURL != nil {
		product.ImageURL = *update.ImageURL
	}
	product.UpdatedAt = time.Now().UTC()
	product.DeriveAvailability()

	updated, err := s.products.FindByIDAndUpdate(ctx, id, *product)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound("product.update", "product", id)
		}
		return nil, domain.StoreFault(err, "product.update", "failed to save product")
	}
	return updated, nil
}

// Delete removes a product. A missing product is a not-found signal, never
// a fault.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.products.FindByIDAndDelete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return domain.NotFound("product.delete", "product", id)
		}
		return domain.StoreFault(err, "product.delete", "failed to delete product")
	}
	s.logger.Info("product deleted", "product_id", id)
	return nil
}
