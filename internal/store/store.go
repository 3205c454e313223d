// Package store implements read-only access to the PostgreSQL warehouse
// of mined forge activity, plus the schema migrations used for local
// development and integration tests.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Warehouse wraps a pgx connection pool and materializes query results
// into schema.Table values. It implements contract.Warehouse.
type Warehouse struct {
	pool *pgxpool.Pool
}

// Connect creates a pool against the warehouse and verifies connectivity
// with a ping. A failed ping surfaces as ErrStoreUnavailable so callers
// fail fast instead of discovering the outage on the first metric.
func Connect(ctx context.Context, connStr string) (*Warehouse, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
	}
	return &Warehouse{pool: pool}, nil
}

// Query runs a single read query and builds a table from the pgx field
// descriptions and row values. Args is typically pgx.NamedArgs.
func (w *Warehouse) Query(ctx context.Context, sql string, args any) (schema.Table, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = w.pool.Query(ctx, sql)
	} else {
		rows, err = w.pool.Query(ctx, sql, args)
	}
	if err != nil {
		return schema.Table{}, classifyQueryError(err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	table := schema.NewTable(columns...)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return schema.Table{}, classifyQueryError(err)
		}
		table.Append(values...)
	}
	if err := rows.Err(); err != nil {
		return schema.Table{}, classifyQueryError(err)
	}
	return table, nil
}

// Ping verifies connectivity.
func (w *Warehouse) Ping(ctx context.Context) error {
	if err := w.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
	}
	return nil
}

// Close releases the underlying pool.
func (w *Warehouse) Close() {
	w.pool.Close()
}

// classifyQueryError maps low-level pgx failures onto the error kinds.
// Server-side rejections (syntax, bind, type errors) arrive as PgError;
// anything else at query time means the store could not be reached.
func classifyQueryError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s (SQLSTATE %s)", contract.ErrQueryRejected, pgErr.Message, pgErr.Code)
	}
	return fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
}
