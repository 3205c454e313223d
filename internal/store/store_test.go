package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyQueryError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42601", Message: "syntax error at or near"}
	err := classifyQueryError(fmt.Errorf("exec: %w", pgErr))
	assert.True(t, errors.Is(err, contract.ErrQueryRejected))
	assert.Contains(t, err.Error(), "42601")

	err = classifyQueryError(errors.New("dial tcp: connection refused"))
	assert.True(t, errors.Is(err, contract.ErrStoreUnavailable))
}

func TestClassifyQueryErrorContext(t *testing.T) {
	// Context errors pass through untouched so callers can detect
	// their own cancellation.
	err := classifyQueryError(context.Canceled)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, contract.ErrQueryRejected))
}

func TestConnectBadAddress(t *testing.T) {
	_, err := Connect(context.Background(), "host=127.0.0.1 port=1 dbname=nope user=nobody connect_timeout=1")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, contract.ErrStoreUnavailable))
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.NotEmpty(t, entries)
}
