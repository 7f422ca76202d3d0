package repository

import (
	"context"

	"staff-directory/internal/database"
)

// querier is the read surface shared by database.DB and database.Tx, so the
// hydration helpers work both on the pool and inside a snapshot transaction.
type querier interface {
	Query(ctx context.Context, query string, args ...any) (database.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) database.Row
}
