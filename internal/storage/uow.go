package storage

import (
	"context"
	"database/sql"
)

// DBTX is the query surface shared by *sql.DB and an open transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UnitOfWork is a transaction scope. All reads the reservation engine
// performs during a checkout and all writes the coordinator applies go
// through the same unit of work, so they commit or abort together.
type UnitOfWork interface {
	DBTX
	Commit() error
	Rollback() error
}

type unitOfWork struct {
	tx       *sql.Tx
	finished bool
}

func (u *unitOfWork) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return u.tx.ExecContext(ctx, query, args...)
}

func (u *unitOfWork) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return u.tx.QueryContext(ctx, query, args...)
}

func (u *unitOfWork) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return u.tx.QueryRowContext(ctx, query, args...)
}

func (u *unitOfWork) Commit() error {
	if u.finished {
		return sql.ErrTxDone
	}
	u.finished = true
	return u.tx.Commit()
}

func (u *unitOfWork) Rollback() error {
	if u.finished {
		return nil
	}
	u.finished = true
	return u.tx.Rollback()
}
