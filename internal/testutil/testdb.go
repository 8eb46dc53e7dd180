package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewTestStateRepo returns a plan-state repository over a fresh in-memory
// database, together with that database for direct inspection.
func NewTestStateRepo(t *testing.T) (*repository.SQLitePlanStateRepo, *sql.DB) {
	t.Helper()
	database := NewTestDB(t)
	return repository.NewSQLitePlanStateRepo(database, NewTestUoW(database)), database
}
