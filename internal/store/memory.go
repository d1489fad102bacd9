package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"shopcore/internal/domain"
)

// Memory is an in-process Collection backed by a mutex-guarded map. It is
// used for tests and for running the server without a database. Records are
// kept in insertion order and deep-copied on the way in and out so callers
// never alias stored state.
type Memory[T any] struct {
	mu   sync.RWMutex
	ids  []string
	recs map[string]T
}

// NewMemory creates an empty in-memory collection.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{recs: make(map[string]T)}
}

// FindByID implements Collection.
func (m *Memory[T]) FindByID(_ context.Context, id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(&rec)
}

// Find implements Collection.
func (m *Memory[T]) Find(_ context.Context, filter Filter) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.ids))
	for _, id := range m.ids {
		rec := m.recs[id]
		ok, err := matches(&rec, filter)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		cp, err := clone(&rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *cp)
	}
	return out, nil
}

// FindOne implements Collection.
func (m *Memory[T]) FindOne(_ context.Context, filter Filter) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.ids {
		rec := m.recs[id]
		ok, err := matches(&rec, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			return clone(&rec)
		}
	}
	return nil, ErrNotFound
}

// Insert implements Collection.
func (m *Memory[T]) Insert(_ context.Context, record T) error {
	id, err := recordID(&record)
	if err != nil {
		return err
	}

	cp, err := clone(&record)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.recs[id]; exists {
		return fmt.Errorf("memory store: duplicate id %q", id)
	}
	m.ids = append(m.ids, id)
	m.recs[id] = *cp
	return nil
}

// FindByIDAndUpdate implements Collection. The stored record is replaced
// wholesale; last write wins.
func (m *Memory[T]) FindByIDAndUpdate(_ context.Context, id string, record T) (*T, error) {
	cp, err := clone(&record)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.recs[id]; !ok {
		return nil, ErrNotFound
	}
	m.recs[id] = *cp
	return clone(cp)
}

// FindByIDAndDelete implements Collection.
func (m *Memory[T]) FindByIDAndDelete(_ context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.recs, id)
	for i, existing := range m.ids {
		if existing == id {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			break
		}
	}
	return clone(&rec)
}

// FindOneAndUpdate implements Collection. The update callback runs under the
// store mutex, so the read-modify-write is atomic for this process.
func (m *Memory[T]) FindOneAndUpdate(_ context.Context, filter Filter, update func(*T)) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.ids {
		rec := m.recs[id]
		ok, err := matches(&rec, filter)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		cp, err := clone(&rec)
		if err != nil {
			return nil, err
		}
		update(cp)
		m.recs[id] = *cp
		return clone(cp)
	}
	return nil, ErrNotFound
}

// Stores bundles one collection per record kind.
type Stores struct {
	Products Collection[domain.Product]
	Carts    Collection[domain.Cart]
	Orders   Collection[domain.Order]
}

// NewMemoryStores creates an in-memory store set.
func NewMemoryStores() *Stores {
	return &Stores{
		Products: NewMemory[domain.Product](),
		Carts:    NewMemory[domain.Cart](),
		Orders:   NewMemory[domain.Order](),
	}
}

// clone deep-copies a record through its JSON form.
func clone[T any](rec *T) (*T, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("memory store: encode record: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("memory store: decode record: %w", err)
	}
	return out, nil
}

// recordID reads the record's "id" wire field.
func recordID[T any](rec *T) (string, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("memory store: encode record: %w", err)
	}
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", fmt.Errorf("memory store: decode record id: %w", err)
	}
	if probe.ID == "" {
		return "", fmt.Errorf("memory store: record has no id")
	}
	return probe.ID, nil
}

// matches checks exact-field equality between the record's wire form and the
// filter. Values compare by their JSON encoding, so typed strings and plain
// strings with the same text are equal.
func matches[T any](rec *T, filter Filter) (bool, error) {
	if len(filter) == 0 {
		return true, nil
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("memory store: encode record: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, fmt.Errorf("memory store: decode record: %w", err)
	}

	for field, want := range filter {
		got, ok := doc[field]
		if !ok {
			return false, nil
		}
		wantRaw, err := json.Marshal(want)
		if err != nil {
			return false, fmt.Errorf("memory store: encode filter value: %w", err)
		}
		if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(wantRaw)) {
			return false, nil
		}
	}
	return true, nil
}
