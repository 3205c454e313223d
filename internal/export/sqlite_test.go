package export

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func exportTable() schema.Table {
	table := schema.NewTable("repo_id", "date", "commit_count", "ratio")
	table.Append(int64(1), time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), int64(42), 0.5)
	table.Append(int64(2), time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), int64(7), nil)
	return table
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")
	require.NoError(t, WriteSQLite(exportTable(), path, "code_changes"))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "code_changes"`).Scan(&count))
	assert.Equal(t, 2, count)

	var date string
	var commits int64
	row := db.QueryRow(`SELECT date, commit_count FROM "code_changes" WHERE repo_id = 1`)
	require.NoError(t, row.Scan(&date, &commits))
	assert.Equal(t, "2023-01-02T00:00:00Z", date)
	assert.Equal(t, int64(42), commits)
}

func TestWriteSQLiteReplacesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")
	require.NoError(t, WriteSQLite(exportTable(), path, "code_changes"))
	require.NoError(t, WriteSQLite(exportTable(), path, "code_changes"))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "code_changes"`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestWriteSQLiteMissingTableName(t *testing.T) {
	err := WriteSQLite(exportTable(), filepath.Join(t.TempDir(), "m.db"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrInvalidArgument)
}

func TestColumnType(t *testing.T) {
	table := exportTable()
	assert.Equal(t, "INTEGER", columnType(table, 0))
	assert.Equal(t, "TEXT", columnType(table, 1))
	assert.Equal(t, "REAL", columnType(table, 3))
}
