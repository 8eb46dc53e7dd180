package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/planboard/internal/db"
)

// FailingKeyUoW wraps a real unit of work and fails the first write to Key
// inside each transaction with Err. Writes to other keys go through, so a
// test can check that they roll back with the failed one.
type FailingKeyUoW struct {
	Inner db.UnitOfWork
	Key   string
	Err   error
}

func (u *FailingKeyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingKeyTx{DBTX: tx, key: u.Key, err: u.Err})
	})
}

type failingKeyTx struct {
	db.DBTX
	key string
	err error
}

// The kv repository binds the key first in both upserts and deletes.
func (f *failingKeyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if len(args) > 0 && args[0] == f.key {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
