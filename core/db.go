package core

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type (
	// DBExecutor is satisfied by *sqlx.DB, *sqlx.Conn and *sqlx.Tx.
	DBExecutor interface {
		sqlx.QueryerContext
		sqlx.ExecerContext
		Rebind(query string) string
	}

	// DBSession is a scoped handle on the store (a pooled connection or the pool itself)
	// that can start transactions.
	DBSession interface {
		DBExecutor

		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
	}
)

var (
	_ DBSession  = (*sqlx.DB)(nil)
	_ DBSession  = (*sqlx.Conn)(nil)
	_ DBExecutor = (*sqlx.Tx)(nil)
)

// InTx runs fn inside a transaction started on sess. The transaction is rolled back if fn
// returns an error (or panics) and committed otherwise.
func InTx(ctx context.Context, sess DBSession, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := sess.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
