package core

import (
	"context"

	"github.com/forgepulse/forgepulse/schema"
	"github.com/jackc/pgx/v5"
)

// Experimental metrics: per-author line accounting, weekly issue
// counts, and top-10 rankings over the dm_* annual/monthly rollups.

const linesChangedByAuthorGroupSQL = `
	SELECT cmt_author_email, cmt_author_date, cmt_author_affiliation AS affiliation,
		SUM(cmt_added) AS additions, SUM(cmt_removed) AS deletions, SUM(cmt_whitespace) AS whitespace
	FROM commits
	WHERE repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
		AND cmt_author_date BETWEEN @begin_date AND @end_date
	GROUP BY cmt_author_email, cmt_author_date, cmt_author_affiliation
	ORDER BY cmt_author_date ASC`

const linesChangedByAuthorRepoSQL = `
	SELECT cmt_author_email, cmt_author_date, cmt_author_affiliation AS affiliation, repo_name,
		SUM(cmt_added) AS additions, SUM(cmt_removed) AS deletions, SUM(cmt_whitespace) AS whitespace
	FROM commits JOIN repo ON commits.repo_id = repo.repo_id
	WHERE commits.repo_id = @repo_id
		AND cmt_author_date BETWEEN @begin_date AND @end_date
	GROUP BY cmt_author_email, cmt_author_date, cmt_author_affiliation, repo_name
	ORDER BY cmt_author_date ASC`

// LinesChangedByAuthor sums additions, deletions and whitespace churn
// per author and authoring date.
func (c *Catalog) LinesChangedByAuthor(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, linesChangedByAuthorGroupSQL, linesChangedByAuthorRepoSQL, p.args(scope, c.now()))
}

const openIssuesCountGroupSQL = `
	SELECT rg_name, COUNT(*) AS open_count, date_trunc('week', issues.created_at) AS date
	FROM issues
	JOIN repo ON issues.repo_id = repo.repo_id
	JOIN repo_groups ON repo.repo_group_id = repo_groups.repo_group_id
	WHERE issue_state = 'open' AND repo.repo_group_id = @repo_group_id
	GROUP BY rg_name, date
	ORDER BY date`

const openIssuesCountRepoSQL = `
	SELECT repo.repo_id, repo_name, COUNT(*) AS open_count, date_trunc('week', issues.created_at) AS date
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE issue_state = 'open' AND repo.repo_id = @repo_id
	GROUP BY repo.repo_id, repo_name, date
	ORDER BY date`

// OpenIssuesCount counts open issues per week of creation.
func (c *Catalog) OpenIssuesCount(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, openIssuesCountGroupSQL, openIssuesCountRepoSQL, p.args(scope, c.now()))
}

const closedIssuesCountGroupSQL = `
	SELECT rg_name, COUNT(*) AS closed_count, date_trunc('week', issues.created_at) AS date
	FROM issues
	JOIN repo ON issues.repo_id = repo.repo_id
	JOIN repo_groups ON repo.repo_group_id = repo_groups.repo_group_id
	WHERE issue_state = 'closed' AND repo.repo_group_id = @repo_group_id
	GROUP BY rg_name, date
	ORDER BY date`

const closedIssuesCountRepoSQL = `
	SELECT repo.repo_id, repo_name, COUNT(*) AS closed_count, date_trunc('week', issues.created_at) AS date
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE issue_state = 'closed' AND repo.repo_id = @repo_id
	GROUP BY repo.repo_id, repo_name, date
	ORDER BY date`

// ClosedIssuesCount counts closed issues per week of creation.
func (c *Catalog) ClosedIssuesCount(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, closedIssuesCountGroupSQL, closedIssuesCountRepoSQL, p.args(scope, c.now()))
}

// rankedArgs resolves the calendar year (default: the year before the
// reference clock, since annual rollups trail the current year) and
// binds the scope.
func (c *Catalog) rankedArgs(scope Scope, calendarYear int) pgx.NamedArgs {
	now := c.now()
	if calendarYear <= 0 {
		calendarYear = now.Year() - 1
	}
	args := pgx.NamedArgs{"calendar_year": calendarYear, "ref_date": now}
	scope.bind(args)
	return args
}

const annualCommitCountRankedByNewRepoGroupSQL = `
	SELECT repo.repo_id, repo_name, year, SUM(patches) AS commits
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND date_part('year', repo_added) = @calendar_year
	GROUP BY repo.repo_id, repo_name, year
	ORDER BY commits DESC
	LIMIT 10`

const annualCommitCountRankedByNewRepoRepoSQL = `
	SELECT repo.repo_id, repo_name, year, SUM(patches) AS commits
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = (SELECT repo_group_id FROM repo WHERE repo_id = @repo_id)
		AND date_part('year', repo_added) = @calendar_year
	GROUP BY repo.repo_id, repo_name, year
	ORDER BY commits DESC
	LIMIT 10`

// AnnualCommitCountRankedByNewRepo ranks repositories added in the
// given calendar year by their annual commit totals.
func (c *Catalog) AnnualCommitCountRankedByNewRepo(ctx context.Context, scope Scope, calendarYear int) (schema.Table, error) {
	return c.scoped(ctx, scope, annualCommitCountRankedByNewRepoGroupSQL, annualCommitCountRankedByNewRepoRepoSQL, c.rankedArgs(scope, calendarYear))
}

const annualLOCCountRankedByNewRepoGroupSQL = `
	SELECT repo.repo_id, repo_name, year, SUM(added - removed - whitespace) AS net, SUM(patches) AS patches
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND date_part('year', repo_added) = @calendar_year
	GROUP BY repo.repo_id, repo_name, year
	ORDER BY net DESC
	LIMIT 10`

const annualLOCCountRankedByNewRepoRepoSQL = `
	SELECT repo.repo_id, repo_name, year, SUM(added - removed - whitespace) AS net, SUM(patches) AS patches
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = (SELECT repo_group_id FROM repo WHERE repo_id = @repo_id)
		AND date_part('year', repo_added) = @calendar_year
	GROUP BY repo.repo_id, repo_name, year
	ORDER BY net DESC
	LIMIT 10`

// AnnualLOCCountRankedByNewRepo ranks repositories added in the given
// calendar year by net lines of code.
func (c *Catalog) AnnualLOCCountRankedByNewRepo(ctx context.Context, scope Scope, calendarYear int) (schema.Table, error) {
	return c.scoped(ctx, scope, annualLOCCountRankedByNewRepoGroupSQL, annualLOCCountRankedByNewRepoRepoSQL, c.rankedArgs(scope, calendarYear))
}

// rankedByRepoSQL selects the rollup window by timeframe: all years,
// the reference clock's year, or the reference clock's month.
func rankedByRepoSQL(timeframe schema.Timeframe, allSQL, yearSQL, monthSQL string) string {
	switch timeframe {
	case schema.YearTimeframe:
		return yearSQL
	case schema.MonthTimeframe:
		return monthSQL
	default:
		return allSQL
	}
}

const annualCommitCountRankedByRepoGroupSQL = `
	SELECT repo.repo_id, repo_name, SUM(patches) AS commits
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
	GROUP BY repo.repo_id, repo_name
	ORDER BY commits DESC
	LIMIT 10`

const annualCommitCountRankedByRepoGroupYearSQL = `
	SELECT repo.repo_id, repo_name, SUM(patches) AS commits
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND year = date_part('year', @ref_date::timestamp)
	GROUP BY repo.repo_id, repo_name
	ORDER BY commits DESC
	LIMIT 10`

const annualCommitCountRankedByRepoGroupMonthSQL = `
	SELECT repo.repo_id, repo_name, SUM(patches) AS commits
	FROM dm_repo_monthly JOIN repo ON dm_repo_monthly.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND year = date_part('year', @ref_date::timestamp)
		AND month = date_part('month', @ref_date::timestamp)
	GROUP BY repo.repo_id, repo_name
	ORDER BY commits DESC
	LIMIT 10`

const annualCommitCountRankedByRepoRepoSQL = `
	SELECT repo.repo_id, repo_name, SUM(patches) AS commits
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = (SELECT repo_group_id FROM repo WHERE repo_id = @repo_id)
	GROUP BY repo.repo_id, repo_name
	ORDER BY commits DESC
	LIMIT 10`

const annualCommitCountRankedByRepoRepoYearSQL = `
	SELECT repo.repo_id, repo_name, SUM(patches) AS commits
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = (SELECT repo_group_id FROM repo WHERE repo_id = @repo_id)
		AND year = date_part('year', @ref_date::timestamp)
	GROUP BY repo.repo_id, repo_name
	ORDER BY commits DESC
	LIMIT 10`

const annualCommitCountRankedByRepoRepoMonthSQL = `
	SELECT repo.repo_id, repo_name, SUM(patches) AS commits
	FROM dm_repo_monthly JOIN repo ON dm_repo_monthly.repo_id = repo.repo_id
	WHERE repo_group_id = (SELECT repo_group_id FROM repo WHERE repo_id = @repo_id)
		AND year = date_part('year', @ref_date::timestamp)
		AND month = date_part('month', @ref_date::timestamp)
	GROUP BY repo.repo_id, repo_name
	ORDER BY commits DESC
	LIMIT 10`

// AnnualCommitCountRankedByRepo ranks the scope's repositories by
// commit totals over the selected timeframe.
func (c *Catalog) AnnualCommitCountRankedByRepo(ctx context.Context, scope Scope, timeframe schema.Timeframe) (schema.Table, error) {
	groupSQL := rankedByRepoSQL(timeframe,
		annualCommitCountRankedByRepoGroupSQL,
		annualCommitCountRankedByRepoGroupYearSQL,
		annualCommitCountRankedByRepoGroupMonthSQL)
	repoSQL := rankedByRepoSQL(timeframe,
		annualCommitCountRankedByRepoRepoSQL,
		annualCommitCountRankedByRepoRepoYearSQL,
		annualCommitCountRankedByRepoRepoMonthSQL)
	return c.scoped(ctx, scope, groupSQL, repoSQL, c.rankedArgs(scope, 0))
}

const annualLOCCountRankedByRepoGroupSQL = `
	SELECT repo.repo_id, repo_name, SUM(added - removed - whitespace) AS net, SUM(patches) AS patches
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
	GROUP BY repo.repo_id, repo_name
	ORDER BY net DESC
	LIMIT 10`

const annualLOCCountRankedByRepoGroupYearSQL = `
	SELECT repo.repo_id, repo_name, SUM(added - removed - whitespace) AS net, SUM(patches) AS patches
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND year = date_part('year', @ref_date::timestamp)
	GROUP BY repo.repo_id, repo_name
	ORDER BY net DESC
	LIMIT 10`

const annualLOCCountRankedByRepoGroupMonthSQL = `
	SELECT repo.repo_id, repo_name, SUM(added - removed - whitespace) AS net, SUM(patches) AS patches
	FROM dm_repo_monthly JOIN repo ON dm_repo_monthly.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND year = date_part('year', @ref_date::timestamp)
		AND month = date_part('month', @ref_date::timestamp)
	GROUP BY repo.repo_id, repo_name
	ORDER BY net DESC
	LIMIT 10`

const annualLOCCountRankedByRepoRepoSQL = `
	SELECT repo.repo_id, repo_name, SUM(added - removed - whitespace) AS net, SUM(patches) AS patches
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = (SELECT repo_group_id FROM repo WHERE repo_id = @repo_id)
	GROUP BY repo.repo_id, repo_name
	ORDER BY net DESC
	LIMIT 10`

const annualLOCCountRankedByRepoRepoYearSQL = `
	SELECT repo.repo_id, repo_name, SUM(added - removed - whitespace) AS net, SUM(patches) AS patches
	FROM dm_repo_annual JOIN repo ON dm_repo_annual.repo_id = repo.repo_id
	WHERE repo_group_id = (SELECT repo_group_id FROM repo WHERE repo_id = @repo_id)
		AND year = date_part('year', @ref_date::timestamp)
	GROUP BY repo.repo_id, repo_name
	ORDER BY net DESC
	LIMIT 10`

const annualLOCCountRankedByRepoRepoMonthSQL = `
	SELECT repo.repo_id, repo_name, SUM(added - removed - whitespace) AS net, SUM(patches) AS patches
	FROM dm_repo_monthly JOIN repo ON dm_repo_monthly.repo_id = repo.repo_id
	WHERE repo_group_id = (SELECT repo_group_id FROM repo WHERE repo_id = @repo_id)
		AND year = date_part('year', @ref_date::timestamp)
		AND month = date_part('month', @ref_date::timestamp)
	GROUP BY repo.repo_id, repo_name
	ORDER BY net DESC
	LIMIT 10`

// AnnualLOCCountRankedByRepo ranks the scope's repositories by net
// lines of code over the selected timeframe.
func (c *Catalog) AnnualLOCCountRankedByRepo(ctx context.Context, scope Scope, timeframe schema.Timeframe) (schema.Table, error) {
	groupSQL := rankedByRepoSQL(timeframe,
		annualLOCCountRankedByRepoGroupSQL,
		annualLOCCountRankedByRepoGroupYearSQL,
		annualLOCCountRankedByRepoGroupMonthSQL)
	repoSQL := rankedByRepoSQL(timeframe,
		annualLOCCountRankedByRepoRepoSQL,
		annualLOCCountRankedByRepoRepoYearSQL,
		annualLOCCountRankedByRepoRepoMonthSQL)
	return c.scoped(ctx, scope, groupSQL, repoSQL, c.rankedArgs(scope, 0))
}
