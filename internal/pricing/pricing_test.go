package pricing

import (
	"context"
	"errors"
	"testing"

	"shopcore/internal/domain"
)

// fakeCatalog serves products from a map and counts lookups.
type fakeCatalog struct {
	products map[string]*domain.Product
	lookups  []string
}

func (f *fakeCatalog) Get(_ context.Context, id string) (*domain.Product, error) {
	f.lookups = append(f.lookups, id)
	p, ok := f.products[id]
	if !ok {
		return nil, domain.NotFound("catalog.get", "product", id)
	}
	cp := *p
	return &cp, nil
}

func TestEngine_Price(t *testing.T) {
	catalog := &fakeCatalog{products: map[string]*domain.Product{
		"p1": {ID: "p1", Name: "Mug", Price: 10},
		"p2": {ID: "p2", Name: "Lamp", Price: 2.5},
	}}
	engine := NewEngine(catalog)

	tests := []struct {
		name      string
		items     []domain.CartItem
		wantTotal float64
	}{
		{
			name:      "empty list prices to zero",
			items:     nil,
			wantTotal: 0,
		},
		{
			name:      "single line",
			items:     []domain.CartItem{{ProductID: "p1", Quantity: 3}},
			wantTotal: 30,
		},
		{
			name: "multiple lines accumulate",
			items: []domain.CartItem{
				{ProductID: "p1", Quantity: 2},
				{ProductID: "p2", Quantity: 4},
			},
			wantTotal: 30,
		},
		{
			name: "repeated product counted per line",
			items: []domain.CartItem{
				{ProductID: "p2", Quantity: 1},
				{ProductID: "p2", Quantity: 1},
			},
			wantTotal: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := engine.Price(context.Background(), tt.items)
			if err != nil {
				t.Fatalf("Price: %v", err)
			}
			if quote.Total != tt.wantTotal {
				t.Errorf("Total = %v, want %v", quote.Total, tt.wantTotal)
			}
			if len(quote.Lines) != len(tt.items) {
				t.Errorf("got %d lines, want %d", len(quote.Lines), len(tt.items))
			}
		})
	}
}

func TestEngine_Price_UsesCatalogPrice(t *testing.T) {
	catalog := &fakeCatalog{products: map[string]*domain.Product{
		"p1": {ID: "p1", Price: 7.25},
	}}
	engine := NewEngine(catalog)

	quote, err := engine.Price(context.Background(), []domain.CartItem{{ProductID: "p1", Quantity: 2}})
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if quote.Lines[0].UnitPrice != 7.25 {
		t.Errorf("UnitPrice = %v, want 7.25", quote.Lines[0].UnitPrice)
	}
	if quote.Total != 14.5 {
		t.Errorf("Total = %v, want 14.5", quote.Total)
	}
}

func TestEngine_Price_FirstMissingProductFails(t *testing.T) {
	catalog := &fakeCatalog{products: map[string]*domain.Product{
		"p1": {ID: "p1", Price: 10},
	}}
	engine := NewEngine(catalog)

	items := []domain.CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost-a", Quantity: 1},
		{ProductID: "ghost-b", Quantity: 1},
	}
	quote, err := engine.Price(context.Background(), items)
	if quote != nil {
		t.Errorf("expected nil quote on failure, got %+v", quote)
	}

	id, ok := domain.IsProductNotFound(err)
	if !ok {
		t.Fatalf("expected ProductNotFoundError, got %v", err)
	}
	if id != "ghost-a" {
		t.Errorf("expected first missing id ghost-a, got %q", id)
	}

	// Resolution stops at the first failure.
	want := []string{"p1", "ghost-a"}
	if len(catalog.lookups) != len(want) {
		t.Fatalf("lookups = %v, want %v", catalog.lookups, want)
	}
	for i := range want {
		if catalog.lookups[i] != want[i] {
			t.Errorf("lookup[%d] = %q, want %q", i, catalog.lookups[i], want[i])
		}
	}
}

func TestEngine_Price_PropagatesStoreFault(t *testing.T) {
	engine := NewEngine(faultCatalog{})

	_, err := engine.Price(context.Background(), []domain.CartItem{{ProductID: "p1", Quantity: 1}})
	if domain.ErrorCode(err) != domain.ESTORE {
		t.Errorf("expected store fault to pass through, got %v", err)
	}
}

type faultCatalog struct{}

func (faultCatalog) Get(context.Context, string) (*domain.Product, error) {
	return nil, domain.StoreFault(errors.New("connection reset"), "catalog.get", "product lookup failed")
}
