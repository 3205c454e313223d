//go:build database

package integration

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestForgepulseWithPostgres drives the CLI end to end against a seeded warehouse.
func TestForgepulseWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("FORGEPULSE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("FORGEPULSE_DB_CONNECT") }()

	// Bring up the schema, then load a small warehouse
	_, err = runForgepulseCommand(t, "schema", "migrate")
	require.NoError(t, err)
	seedWarehouse(t, ctx, connStr)

	t.Run("code changes rolls up commits", func(t *testing.T) {
		out, err := runForgepulseCommand(t, "metric", "code-changes",
			"--begin", "2023-01-01", "--end", "2023-12-31", "--output", "csv")
		require.NoError(t, err)

		header, rows := parseCSV(t, out)
		require.NotEmpty(t, rows)
		assert.Equal(t, int64(5), sumColumn(t, header, rows, "commit_count"))
	})

	t.Run("top committers cover half the annual total", func(t *testing.T) {
		out, err := runForgepulseCommand(t, "top-committers",
			"--year", "2023", "--threshold", "0.5", "--output", "csv")
		require.NoError(t, err)

		header, rows := parseCSV(t, out)
		require.NotEmpty(t, rows)
		last := rows[len(rows)-1]
		assert.Equal(t, "other_contributors", last[columnIndex(t, header, "email")])
		assert.Equal(t, int64(100), sumColumn(t, header, rows, "commits"))
	})

	t.Run("threshold one lists everyone", func(t *testing.T) {
		out, err := runForgepulseCommand(t, "top-committers",
			"--year", "2023", "--threshold", "1", "--output", "csv")
		require.NoError(t, err)

		header, rows := parseCSV(t, out)
		require.Len(t, rows, 4) // 3 committers + remainder
		assert.Equal(t, "0", rows[3][columnIndex(t, header, "commits")])
		assert.Equal(t, int64(100), sumColumn(t, header, rows, "commits"))
	})

	t.Run("invalid threshold is rejected", func(t *testing.T) {
		_, err := runForgepulseCommand(t, "top-committers", "--threshold", "1.5")
		require.Error(t, err)
	})

	t.Run("empty range yields zero rows", func(t *testing.T) {
		out, err := runForgepulseCommand(t, "metric", "issues-new",
			"--begin", "1980-01-01", "--end", "1980-12-31", "--output", "csv")
		require.NoError(t, err)
		_, rows := parseCSV(t, out)
		assert.Empty(t, rows)
	})

	t.Run("groups are listed", func(t *testing.T) {
		out, err := runForgepulseCommand(t, "groups", "--output", "csv")
		require.NoError(t, err)
		assert.Contains(t, out, "rails-group")
	})

	t.Run("repo scope narrows results", func(t *testing.T) {
		out, err := runForgepulseCommand(t, "metric", "issues-new",
			"--repo", "25430", "--period", "year",
			"--begin", "2023-01-01", "--end", "2023-12-31", "--output", "csv")
		require.NoError(t, err)

		header, rows := parseCSV(t, out)
		require.NotEmpty(t, rows)
		assert.Equal(t, int64(2), sumColumn(t, header, rows, "issues"))
	})
}

// seedWarehouse loads a minimal but internally consistent Augur-style dataset.
func seedWarehouse(t *testing.T, ctx context.Context, connStr string) {
	t.Helper()

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	statements := []string{
		`INSERT INTO repo_groups (repo_group_id, rg_name) VALUES (1, 'rails-group')`,
		`INSERT INTO repo (repo_id, repo_group_id, repo_git, repo_path, repo_name)
			VALUES (25430, 1, 'https://github.com/rails/rails.git', 'github.com/rails/', 'rails')`,

		`INSERT INTO commits (repo_id, cmt_commit_hash, cmt_author_name, cmt_author_email,
				cmt_author_date, cmt_committer_date, cmt_added, cmt_removed)
			VALUES
			(25430, 'a1', 'Alice', 'alice@example.com', '2023-03-01', '2023-03-01', 10, 2),
			(25430, 'a2', 'Alice', 'alice@example.com', '2023-03-02', '2023-03-02', 20, 5),
			(25430, 'a3', 'Alice', 'alice@example.com', '2023-03-02', '2023-03-02', 5, 1),
			(25430, 'b1', 'Bob', 'bob@example.com', '2023-04-10', '2023-04-10', 7, 3),
			(25430, 'b2', 'Bob', 'bob@example.com', '2023-04-11', '2023-04-11', 9, 4)`,

		`INSERT INTO issues (issue_id, repo_id, gh_issue_number, issue_title, issue_state, created_at, closed_at)
			VALUES
			(1, 25430, 101, 'Crash on boot', 'closed', '2023-02-01', '2023-02-05'),
			(2, 25430, 102, 'Docs typo', 'open', '2023-02-10', NULL)`,

		`INSERT INTO dm_repo_group_annual (repo_group_id, email, year, added, removed, whitespace, files, patches)
			VALUES
			(1, 'alice@example.com', 2023, 500, 100, 10, 20, 60),
			(1, 'bob@example.com', 2023, 200, 50, 5, 10, 30),
			(1, 'carol@example.com', 2023, 50, 10, 1, 3, 10)`,

		`INSERT INTO dm_repo_annual (repo_id, email, year, added, removed, whitespace, files, patches)
			VALUES
			(25430, 'alice@example.com', 2023, 500, 100, 10, 20, 60),
			(25430, 'bob@example.com', 2023, 200, 50, 5, 10, 30),
			(25430, 'carol@example.com', 2023, 50, 10, 1, 3, 10)`,
	}
	for _, stmt := range statements {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err, stmt)
	}
}

// parseCSV splits CSV output into a header and data rows.
func parseCSV(t *testing.T, out string) ([]string, [][]string) {
	t.Helper()

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], records[1:]
}

// columnIndex finds a column position in the CSV header.
func columnIndex(t *testing.T, header []string, name string) int {
	t.Helper()

	for i, col := range header {
		if col == name {
			return i
		}
	}
	t.Fatalf("column %s not found in %v", name, header)
	return -1
}

// sumColumn adds up one integer column across all data rows.
func sumColumn(t *testing.T, header []string, rows [][]string, name string) int64 {
	t.Helper()

	idx := columnIndex(t, header, name)
	var sum int64
	for _, row := range rows {
		v, err := strconv.ParseInt(row[idx], 10, 64)
		require.NoError(t, err)
		sum += v
	}
	return sum
}
