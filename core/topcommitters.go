package core

import (
	"context"
	"fmt"
	"math"

	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/schema"
	"github.com/jackc/pgx/v5"
)

const topCommittersGroupTotalSQL = `
	SELECT COALESCE(SUM(patches), 0)::bigint AS total
	FROM dm_repo_group_annual
	WHERE year = @year AND repo_group_id = @repo_group_id`

const topCommittersRepoTotalSQL = `
	SELECT COALESCE(SUM(patches), 0)::bigint AS total
	FROM dm_repo_annual
	WHERE year = @year AND repo_id = @repo_id`

// Email ASC is pinned as the secondary sort so equal commit counts
// always come back in the same order.
const topCommittersGroupSQL = `
	SELECT repo_groups.repo_group_id, rg_name AS repo_group_name, email, SUM(a.patches)::bigint AS commits
	FROM dm_repo_group_annual a
	JOIN repo_groups ON a.repo_group_id = repo_groups.repo_group_id
	WHERE year = @year AND a.repo_group_id = @repo_group_id
	GROUP BY repo_groups.repo_group_id, rg_name, email
	ORDER BY commits DESC, email ASC`

const topCommittersRepoSQL = `
	SELECT repo.repo_id, repo_name, email, SUM(a.patches)::bigint AS commits
	FROM dm_repo_annual a
	JOIN repo ON a.repo_id = repo.repo_id
	WHERE year = @year AND a.repo_id = @repo_id
	GROUP BY repo.repo_id, repo_name, email
	ORDER BY commits DESC, email ASC`

// TopCommitters returns the smallest set of committers covering the
// requested share of the scope's annual commit total, plus one
// synthetic other_contributors row holding the remainder. The sum of
// all returned commit counts always equals the scope's total.
//
// threshold must be inside [0, 1]; both bounds are valid. threshold 0
// yields only the remainder row, threshold 1 yields every committer
// with a remainder of 0. year defaults to the reference clock's year.
func (c *Catalog) TopCommitters(ctx context.Context, scope Scope, year int, threshold float64) (schema.Table, error) {
	if threshold < 0 || threshold > 1 {
		return schema.Table{}, fmt.Errorf("%w: threshold must be between 0 and 1 inclusive (received %v)", contract.ErrInvalidArgument, threshold)
	}
	if year <= 0 {
		year = c.now().Year()
	}

	args := pgx.NamedArgs{"year": year}
	scope.bind(args)

	totalSQL, committersSQL := topCommittersGroupTotalSQL, topCommittersGroupSQL
	columns := []string{"repo_group_id", "repo_group_name", "email", "commits"}
	if scope.IsRepo() {
		totalSQL, committersSQL = topCommittersRepoTotalSQL, topCommittersRepoSQL
		columns = []string{"repo_id", "repo_name", "email", "commits"}
	}

	totals, err := c.store.Query(ctx, totalSQL, args)
	if err != nil {
		return schema.Table{}, err
	}
	var total int64
	if !totals.IsEmpty() {
		total = asInt64(totals.Rows[0][0])
	}
	if total <= 0 {
		// Nothing recorded for this scope and year.
		return schema.NewTable(columns...), nil
	}

	committers, err := c.store.Query(ctx, committersSQL, args)
	if err != nil {
		return schema.Table{}, err
	}
	if committers.IsEmpty() {
		return schema.NewTable(columns...), nil
	}

	need := int64(math.Round(threshold * float64(total)))
	commitsIdx := committers.ColumnIndex("commits")

	prefix, covered := cutAtThreshold(committers.Rows, commitsIdx, need)

	result := schema.NewTable(committers.Columns...)
	result.Rows = append(result.Rows, prefix...)

	// The remainder row reuses the scope id and name from the first
	// committer row. If the rollups are inconsistent and the prefix
	// never reaches need, the remainder may stay positive after
	// including every committer; it is reported as-is, never fabricated.
	first := committers.Rows[0]
	result.Append(first[0], first[1], "other_contributors", total-covered)
	return result, nil
}

// cutAtThreshold returns the shortest prefix of rows whose cumulative
// commit count reaches need, plus that cumulative sum. need <= 0 yields
// an empty prefix.
func cutAtThreshold(rows [][]any, commitsIdx int, need int64) ([][]any, int64) {
	prefix := make([][]any, 0, len(rows))
	var sum int64
	for _, row := range rows {
		if sum >= need {
			break
		}
		sum += asInt64(row[commitsIdx])
		prefix = append(prefix, row)
	}
	return prefix, sum
}
