// Package core implements the metric catalog over the mined warehouse.
//
// Every scoped metric carries two query templates selected by the scope
// tag: group-scoped variants include repo_id columns, repo-scoped
// variants drop them. Results come back as schema.Table and an empty
// table is a valid outcome, never an error.
package core

import (
	"context"
	"time"

	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/schema"
	"github.com/jackc/pgx/v5"
)

// Catalog executes metrics against a warehouse. The reference clock is
// injectable so date defaulting and "open for N days" math are
// reproducible in tests.
type Catalog struct {
	store contract.Warehouse
	now   func() time.Time
}

// NewCatalog creates a catalog using the wall clock.
func NewCatalog(store contract.Warehouse) *Catalog {
	return &Catalog{store: store, now: time.Now}
}

// NewCatalogWithClock creates a catalog with an explicit reference clock.
func NewCatalogWithClock(store contract.Warehouse, clock func() time.Time) *Catalog {
	return &Catalog{store: store, now: clock}
}

// scoped runs the query template matching the scope tag.
func (c *Catalog) scoped(ctx context.Context, scope Scope, groupSQL, repoSQL string, args pgx.NamedArgs) (schema.Table, error) {
	if scope.IsRepo() {
		return c.store.Query(ctx, repoSQL, args)
	}
	return c.store.Query(ctx, groupSQL, args)
}

// asInt64 normalizes the numeric types pgx hands back for aggregates.
func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
