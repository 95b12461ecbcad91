package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a lookup matches no row. Absence is a normal,
// reportable outcome for this service, not a query failure.
var ErrNotFound = errors.New("not found")

// Querier is the query surface shared by *pgxpool.Pool and *pgxpool.Conn.
// Lookup methods take one explicitly so a caller holding a connection for a
// multi-read phase can pass it in; repositories never release what they are
// given. Passing nil makes the repository use its own pool, where acquire
// and release happen inside the call.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
