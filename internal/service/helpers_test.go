package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"shopcore/internal/domain"
	"shopcore/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	orders []*domain.Order
	carts  []*domain.Cart
	fail   error
}

func (p *recordingPublisher) OrderCreated(_ context.Context, order *domain.Order) error {
	if p.fail != nil {
		return p.fail
	}
	p.orders = append(p.orders, order)
	return nil
}

func (p *recordingPublisher) CartCleared(_ context.Context, cart *domain.Cart) error {
	if p.fail != nil {
		return p.fail
	}
	p.carts = append(p.carts, cart)
	return nil
}

func (p *recordingPublisher) Close() {}

var errStoreDown = errors.New("store down")

// faultCollection fails every operation, for exercising fault paths.
type faultCollection[T any] struct{}

func (faultCollection[T]) FindByID(context.Context, string) (*T, error) { return nil, errStoreDown }
func (faultCollection[T]) Find(context.Context, store.Filter) ([]T, error) {
	return nil, errStoreDown
}
func (faultCollection[T]) FindOne(context.Context, store.Filter) (*T, error) {
	return nil, errStoreDown
}
func (faultCollection[T]) Insert(context.Context, T) error { return errStoreDown }
func (faultCollection[T]) FindByIDAndUpdate(context.Context, string, T) (*T, error) {
	return nil, errStoreDown
}
func (faultCollection[T]) FindByIDAndDelete(context.Context, string) (*T, error) {
	return nil, errStoreDown
}
func (faultCollection[T]) FindOneAndUpdate(context.Context, store.Filter, func(*T)) (*T, error) {
	return nil, errStoreDown
}
