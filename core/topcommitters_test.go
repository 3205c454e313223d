package core

import (
	"context"
	"errors"
	"testing"

	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalTable(total int64) schema.Table {
	t := schema.NewTable("total")
	t.Append(total)
	return t
}

func committerTable(rows ...[]any) schema.Table {
	t := schema.NewTable("repo_group_id", "repo_group_name", "email", "commits")
	t.Rows = append(t.Rows, rows...)
	return t
}

func commitSum(t schema.Table) int64 {
	idx := t.ColumnIndex("commits")
	var sum int64
	for _, row := range t.Rows {
		sum += asInt64(row[idx])
	}
	return sum
}

func TestTopCommittersPrefix(t *testing.T) {
	fake := &fakeWarehouse{tables: []schema.Table{
		totalTable(100),
		committerTable(
			[]any{int64(1), "rails", "alice@example.com", int64(50)},
			[]any{int64(1), "rails", "bob@example.com", int64(30)},
			[]any{int64(1), "rails", "carol@example.com", int64(20)},
		),
	}}
	catalog := NewCatalogWithClock(fake, fixedClock(testNow))

	table, err := catalog.TopCommitters(context.Background(), GroupScope(1), 2022, 0.5)
	require.NoError(t, err)

	// need = 50, satisfied by alice alone; remainder covers the rest.
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "alice@example.com", table.Rows[0][2])
	assert.Equal(t, "other_contributors", table.Rows[1][2])
	assert.Equal(t, int64(50), table.Rows[1][3])
	assert.Equal(t, int64(100), commitSum(table))
}

func TestTopCommittersZeroThreshold(t *testing.T) {
	fake := &fakeWarehouse{tables: []schema.Table{
		totalTable(80),
		committerTable(
			[]any{int64(1), "rails", "alice@example.com", int64(80)},
		),
	}}
	catalog := NewCatalogWithClock(fake, fixedClock(testNow))

	table, err := catalog.TopCommitters(context.Background(), GroupScope(1), 2022, 0)
	require.NoError(t, err)

	// Empty prefix, only the remainder row carrying the full total.
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "other_contributors", table.Rows[0][2])
	assert.Equal(t, int64(80), table.Rows[0][3])
}

func TestTopCommittersFullThreshold(t *testing.T) {
	fake := &fakeWarehouse{tables: []schema.Table{
		totalTable(100),
		committerTable(
			[]any{int64(1), "rails", "alice@example.com", int64(60)},
			[]any{int64(1), "rails", "bob@example.com", int64(40)},
		),
	}}
	catalog := NewCatalogWithClock(fake, fixedClock(testNow))

	table, err := catalog.TopCommitters(context.Background(), GroupScope(1), 2022, 1)
	require.NoError(t, err)

	// Everyone is listed and the remainder is zero.
	require.Equal(t, 3, table.Len())
	assert.Equal(t, int64(0), table.Rows[2][3])
	assert.Equal(t, int64(100), commitSum(table))
}

func TestTopCommittersInvalidThreshold(t *testing.T) {
	for _, threshold := range []float64{-0.1, 1.1} {
		catalog := NewCatalogWithClock(&fakeWarehouse{}, fixedClock(testNow))
		_, err := catalog.TopCommitters(context.Background(), GroupScope(1), 2022, threshold)
		require.Error(t, err)
		assert.True(t, errors.Is(err, contract.ErrInvalidArgument))
	}
}

func TestTopCommittersZeroTotal(t *testing.T) {
	fake := &fakeWarehouse{tables: []schema.Table{totalTable(0)}}
	catalog := NewCatalogWithClock(fake, fixedClock(testNow))

	table, err := catalog.TopCommitters(context.Background(), GroupScope(1), 2022, 0.5)
	require.NoError(t, err)

	assert.True(t, table.IsEmpty())
	assert.Equal(t, []string{"repo_group_id", "repo_group_name", "email", "commits"}, table.Columns)

	// Only the total query runs when there is nothing to rank.
	assert.Len(t, fake.sqls, 1)
}

func TestTopCommittersUnreachableThreshold(t *testing.T) {
	// Inconsistent rollups: the committer rows sum below the total.
	fake := &fakeWarehouse{tables: []schema.Table{
		totalTable(100),
		committerTable(
			[]any{int64(1), "rails", "alice@example.com", int64(40)},
			[]any{int64(1), "rails", "bob@example.com", int64(20)},
		),
	}}
	catalog := NewCatalogWithClock(fake, fixedClock(testNow))

	table, err := catalog.TopCommitters(context.Background(), GroupScope(1), 2022, 1)
	require.NoError(t, err)

	// All rows plus a remainder that keeps the sum invariant.
	require.Equal(t, 3, table.Len())
	assert.Equal(t, int64(40), table.Rows[2][3])
	assert.Equal(t, int64(100), commitSum(table))
}

func TestTopCommittersScopeTables(t *testing.T) {
	fake := &fakeWarehouse{tables: []schema.Table{totalTable(0)}}
	catalog := NewCatalogWithClock(fake, fixedClock(testNow))

	_, err := catalog.TopCommitters(context.Background(), RepoScope(9), 2022, 0.5)
	require.NoError(t, err)
	assert.Contains(t, fake.sqls[0], "dm_repo_annual")
	assert.Equal(t, int64(9), fake.args[0]["repo_id"])

	fake2 := &fakeWarehouse{tables: []schema.Table{totalTable(0)}}
	catalog = NewCatalogWithClock(fake2, fixedClock(testNow))
	_, err = catalog.TopCommitters(context.Background(), GroupScope(4), 2022, 0.5)
	require.NoError(t, err)
	assert.Contains(t, fake2.sqls[0], "dm_repo_group_annual")
}

func TestTopCommittersDefaultYear(t *testing.T) {
	fake := &fakeWarehouse{tables: []schema.Table{totalTable(0)}}
	catalog := NewCatalogWithClock(fake, fixedClock(testNow))

	_, err := catalog.TopCommitters(context.Background(), GroupScope(1), 0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2023, fake.args[0]["year"])
}

func TestCutAtThreshold(t *testing.T) {
	rows := [][]any{
		{int64(1), "g", "a", int64(5)},
		{int64(1), "g", "b", int64(3)},
		{int64(1), "g", "c", int64(2)},
	}

	prefix, sum := cutAtThreshold(rows, 3, 0)
	assert.Empty(t, prefix)
	assert.Equal(t, int64(0), sum)

	prefix, sum = cutAtThreshold(rows, 3, 6)
	assert.Len(t, prefix, 2)
	assert.Equal(t, int64(8), sum)

	prefix, sum = cutAtThreshold(rows, 3, 100)
	assert.Len(t, prefix, 3)
	assert.Equal(t, int64(10), sum)
}
