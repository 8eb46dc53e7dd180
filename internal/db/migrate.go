package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Migrate runs all schema migrations. Statements are re-run on every open
// and must be idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateLegacyKeys(db); err != nil {
		return fmt.Errorf("renaming legacy keys: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Bumped on every write; lets the board notice edits made by the CLI.
	`ALTER TABLE kv_store ADD COLUMN revision INTEGER NOT NULL DEFAULT 0`,

	`CREATE INDEX IF NOT EXISTS idx_kv_store_updated ON kv_store(updated_at)`,
}

// legacyKeys maps key names written by early builds to their current
// names.
var legacyKeys = map[string]string{
	"savedPlan":               "plan",
	"planGeneratorCategories": "categories",
}

// migrateLegacyKeys renames old keys unless the current key already
// exists, in which case the legacy row is dropped.
func migrateLegacyKeys(db *sql.DB) error {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC().Format(time.RFC3339)
	for legacy, current := range legacyKeys {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO kv_store (key, value, updated_at)
			 SELECT ?, value, ? FROM kv_store WHERE key = ?`,
			current, now, legacy); err != nil {
			return fmt.Errorf("copying %s to %s: %w", legacy, current, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, legacy); err != nil {
			return fmt.Errorf("dropping %s: %w", legacy, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}
	committed = true
	return nil
}
