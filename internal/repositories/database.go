package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the statement-level surface shared by a pool and an open
// transaction. Repository methods that must run inside a caller-owned
// transaction take a Querier explicitly and are handed the pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Database is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type Database interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
