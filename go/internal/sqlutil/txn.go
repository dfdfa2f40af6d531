package sqlutil

import (
	"context"
	"database/sql"
)

// ReadCommitted is the isolation transfer units of work run under. Row locks
// taken with FOR UPDATE make a waiting writer re-read the committed row.
var ReadCommitted = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

// Run executes fn inside a *sql.Tx.
// If fn returns an error the tx rolls back, else it commits.
func Run[T any](
	ctx context.Context,
	db *sql.DB,
	newQueries func(*sql.Tx) *T,
	fn func(q *T) error,
) error {
	return RunWithOptions(ctx, db, nil, newQueries, fn)
}

// RunWithOptions is Run with explicit transaction options
func RunWithOptions[T any](
	ctx context.Context,
	db *sql.DB,
	opts *sql.TxOptions,
	newQueries func(*sql.Tx) *T,
	fn func(q *T) error,
) error {
	tx, err := db.BeginTx(ctx, opts) // BEGIN
	if err != nil {
		return err
	}
	q := newQueries(tx) // bind sqlc Queries to this tx
	if err := fn(q); err != nil {
		_ = tx.Rollback() // ROLLBACK
		return err
	}
	return tx.Commit() // COMMIT
}
