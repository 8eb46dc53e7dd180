package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/db"
)

// Keys persisted by planboard.
const (
	KeyPlan       = "plan"
	KeyCategories = "categories"
	KeyHistory    = "history"
)

// Entry is one stored key with its bookkeeping columns.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
	Revision  int64
}

// SQLiteKVRepo implements KVRepo on the kv_store table.
type SQLiteKVRepo struct {
	db db.DBTX
}

// NewSQLiteKVRepo creates a new SQLiteKVRepo.
func NewSQLiteKVRepo(conn db.DBTX) *SQLiteKVRepo {
	return &SQLiteKVRepo{db: conn}
}

func (r *SQLiteKVRepo) Get(ctx context.Context, key string) (string, error) {
	e, err := r.Entry(ctx, key)
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

func (r *SQLiteKVRepo) Entry(ctx context.Context, key string) (Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at, revision FROM kv_store WHERE key = ?`, key)

	var e Entry
	var updatedAt string
	if err := row.Scan(&e.Key, &e.Value, &updatedAt, &e.Revision); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return Entry{}, fmt.Errorf("reading key %q: %w", key, err)
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		e.UpdatedAt = t
	}
	return e, nil
}

func (r *SQLiteKVRepo) Put(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at,
			revision = kv_store.revision + 1`
	if _, err := r.db.ExecContext(ctx, query, key, value, nowUTC()); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteKVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteKVRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv_store ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
