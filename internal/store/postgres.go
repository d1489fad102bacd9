package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"shopcore/internal/domain"
)

// SQL is a Collection backed by a Postgres JSONB document table of the shape
// (id text primary key, doc jsonb). Exact-field filters translate to JSONB
// containment (@>), full-document replaces to a single UPDATE.
type SQL[T any] struct {
	db    *sql.DB
	table string
}

// NewSQL creates a SQL-backed collection over the given table.
func NewSQL[T any](db *sql.DB, table string) *SQL[T] {
	return &SQL[T]{db: db, table: table}
}

// NewSQLStores creates a store set over the standard three tables.
func NewSQLStores(db *sql.DB) *Stores {
	return &Stores{
		Products: NewSQL[domain.Product](db, "products"),
		Carts:    NewSQL[domain.Cart](db, "carts"),
		Orders:   NewSQL[domain.Order](db, "orders"),
	}
}

// FindByID implements Collection.
func (s *SQL[T]) FindByID(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, s.table)

	var raw []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: find by id: %w", s.table, err)
	}
	return decode[T](s.table, raw)
}

// Find implements Collection. A nil filter returns every record in
// insertion order.
func (s *SQL[T]) Find(ctx context.Context, filter Filter) ([]T, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE doc @> $1::jsonb ORDER BY inserted_at, id`, s.table)

	cond, err := filterJSON(filter)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", s.table, err)
	}

	rows, err := s.db.QueryContext(ctx, query, cond)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", s.table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%s: find: scan: %w", s.table, err)
		}
		rec, err := decode[T](s.table, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: find: rows: %w", s.table, err)
	}
	return out, nil
}

// FindOne implements Collection.
func (s *SQL[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE doc @> $1::jsonb ORDER BY inserted_at, id LIMIT 1`, s.table)

	cond, err := filterJSON(filter)
	if err != nil {
		return nil, fmt.Errorf("%s: find one: %w", s.table, err)
	}

	var raw []byte
	err = s.db.QueryRowContext(ctx, query, cond).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: find one: %w", s.table, err)
	}
	return decode[T](s.table, raw)
}

// Insert implements Collection.
func (s *SQL[T]) Insert(ctx context.Context, record T) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)`, s.table)

	id, err := recordID(&record)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%s: insert: encode: %w", s.table, err)
	}

	if _, err := s.db.ExecContext(ctx, query, id, raw); err != nil {
		return fmt.Errorf("%s: insert: %w", s.table, err)
	}
	return nil
}

// FindByIDAndUpdate implements Collection. Last write wins.
func (s *SQL[T]) FindByIDAndUpdate(ctx context.Context, id string, record T) (*T, error) {
	query := fmt.Sprintf(`UPDATE %s SET doc = $2::jsonb WHERE id = $1 RETURNING doc`, s.table)

	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%s: update: encode: %w", s.table, err)
	}

	var stored []byte
	err = s.db.QueryRowContext(ctx, query, id, raw).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: update: %w", s.table, err)
	}
	return decode[T](s.table, stored)
}

// FindByIDAndDelete implements Collection.
func (s *SQL[T]) FindByIDAndDelete(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 RETURNING doc`, s.table)

	var raw []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: delete: %w", s.table, err)
	}
	return decode[T](s.table, raw)
}

// FindOneAndUpdate implements Collection. The matching row is locked for the
// duration of the transaction, so the read-modify-write is atomic.
func (s *SQL[T]) FindOneAndUpdate(ctx context.Context, filter Filter, update func(*T)) (*T, error) {
	selectQ := fmt.Sprintf(`SELECT id, doc FROM %s WHERE doc @> $1::jsonb ORDER BY inserted_at, id LIMIT 1 FOR UPDATE`, s.table)
	updateQ := fmt.Sprintf(`UPDATE %s SET doc = $2::jsonb WHERE id = $1`, s.table)

	cond, err := filterJSON(filter)
	if err != nil {
		return nil, fmt.Errorf("%s: find one and update: %w", s.table, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: find one and update: begin: %w", s.table, err)
	}
	defer tx.Rollback()

	var (
		id  string
		raw []byte
	)
	err = tx.QueryRowContext(ctx, selectQ, cond).Scan(&id, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: find one and update: select: %w", s.table, err)
	}

	rec, err := decode[T](s.table, raw)
	if err != nil {
		return nil, err
	}
	update(rec)

	updated, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: find one and update: encode: %w", s.table, err)
	}
	if _, err := tx.ExecContext(ctx, updateQ, id, updated); err != nil {
		return nil, fmt.Errorf("%s: find one and update: update: %w", s.table, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: find one and update: commit: %w", s.table, err)
	}
	return rec, nil
}

func decode[T any](table string, raw []byte) (*T, error) {
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("%s: decode doc: %w", table, err)
	}
	return out, nil
}

// filterJSON renders a filter as the JSONB containment operand. A nil filter
// becomes the empty object, which every document contains.
func filterJSON(filter Filter) ([]byte, error) {
	if filter == nil {
		filter = Filter{}
	}
	raw, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	return raw, nil
}
