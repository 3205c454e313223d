// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/forgepulse/forgepulse/schema"
)

// Error kinds exposed by every metric operation. Callers branch on
// these with errors.Is; the concrete cause stays wrapped underneath.
var (
	// ErrInvalidArgument means the caller supplied an out-of-range or
	// malformed parameter (e.g. threshold outside [0,1]).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable means the warehouse could not be reached or
	// a connection could not be acquired.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrQueryRejected means the warehouse refused or failed to execute
	// a query (bind, type, or execution failure).
	ErrQueryRejected = errors.New("query rejected")
)

// Warehouse defines the read-only operations the metric catalog needs
// from the mined-data store. This allows the catalog to be tested
// without a live PostgreSQL instance.
type Warehouse interface {
	// Query executes a single read query and materializes the result.
	// Args is typically pgx.NamedArgs; nil runs the query unbound.
	Query(ctx context.Context, sql string, args any) (schema.Table, error)

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying pool.
	Close()
}
