// Package pricing resolves authoritative unit prices from the catalog and
// computes line-itemized cart totals. It is strictly read-only: pricing a
// cart never mutates catalog state.
package pricing

import (
	"context"

	"shopcore/internal/domain"
)

// Catalog is the slice of the product catalog the engine needs. The cart
// manager injects the real catalog service; tests substitute a fake.
type Catalog interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// Line is a resolved line item: the requested quantity priced at the
// catalog's current unit price.
type Line struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Quote is the result of pricing an item list against live catalog data.
type Quote struct {
	Total float64 `json:"total"`
	Lines []Line  `json:"lines"`
}

// Engine prices item lists against the catalog.
type Engine struct {
	catalog Catalog
}

// NewEngine creates a pricing engine backed by the given catalog.
func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Price resolves each item's unit price from the catalog and accumulates
// unitPrice x quantity into the running total. The first item whose product
// cannot be found fails the whole quote with that product's id; there is no
// partial or aggregate report.
func (e *Engine) Price(ctx context.Context, items []domain.CartItem) (*Quote, error) {
	quote := &Quote{Lines: make([]Line, 0, len(items))}

	for _, item := range items {
		product, err := e.catalog.Get(ctx, item.ProductID)
		if err != nil {
			if domain.IsCode(err, domain.ENOTFOUND) {
				return nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
			}
			return nil, err
		}

		quote.Lines = append(quote.Lines, Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		quote.Total += product.Price * float64(item.Quantity)
	}

	return quote, nil
}
