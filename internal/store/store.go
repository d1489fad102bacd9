// Package store provides the generic record store the domain services
// persist through: create/read/update/delete by id plus exact-field queries
// over the three record kinds (products, carts, orders).
//
// Absence is signaled with ErrNotFound; every other failure is a store-level
// fault that implementations wrap with domain.StoreFault so callers can tell
// "no such record" apart from "the store is broken".
package store

import (
	"context"
	"errors"
)

// ErrNotFound is the absence signal for lookups, updates and deletes that
// reference a record that does not exist. It is a sentinel, not a fault.
var ErrNotFound = errors.New("record not found")

// IsNotFound reports whether err is the store's absence signal.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Filter selects records by exact-field equality on the record's wire
// (JSON) field names, e.g. Filter{"userId": "u1", "status": "active"}.
// A nil or empty filter matches everything.
type Filter map[string]any

// Collection is the per-record-kind store contract. T is the record type;
// records carry their own id in their "id" JSON field.
//
// Updates are full-document replaces: last write wins, there is no
// record-level locking across a read-modify-write performed by a caller.
type Collection[T any] interface {
	// FindByID returns the record with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*T, error)

	// Find returns all records matching the filter, in insertion order.
	Find(ctx context.Context, filter Filter) ([]T, error)

	// FindOne returns the first record matching the filter, or ErrNotFound.
	FindOne(ctx context.Context, filter Filter) (*T, error)

	// Insert persists a new record as-is.
	Insert(ctx context.Context, record T) error

	// FindByIDAndUpdate replaces the record with the given id and returns
	// the stored result, or ErrNotFound.
	FindByIDAndUpdate(ctx context.Context, id string, record T) (*T, error)

	// FindByIDAndDelete removes the record with the given id and returns
	// what was removed, or ErrNotFound.
	FindByIDAndDelete(ctx context.Context, id string) (*T, error)

	// FindOneAndUpdate applies update to the first record matching the
	// filter and returns the stored result, or ErrNotFound. The read and
	// write happen under the store's own consistency unit (a row lock for
	// SQL, the map mutex in memory).
	FindOneAndUpdate(ctx context.Context, filter Filter, update func(*T)) (*T, error)
}
