package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database; tests use it.
const MemoryPath = ":memory:"

// busyTimeoutMS lets a CLI command wait for the board's write (and the
// other way round) instead of failing with SQLITE_BUSY.
const busyTimeoutMS = 5000

// OpenDB opens the plan database at path, creating its directory, and
// brings the kv_store schema up to date.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening plan database %s: %w", path, err)
	}
	// Every connection to ":memory:" is a separate database.
	if path == MemoryPath {
		conn.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMS),
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	return conn, nil
}
