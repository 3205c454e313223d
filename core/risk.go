package core

import (
	"context"

	"github.com/forgepulse/forgepulse/schema"
)

// Risk metrics surface sustainability signals: badging, licensing,
// responsiveness, and ecosystem spread.

const ciiBestPracticesBadgeGroupSQL = `
	SELECT repo_badging.repo_id, repo_name, badge_level
	FROM repo_badging JOIN repo ON repo_badging.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id`

const ciiBestPracticesBadgeRepoSQL = `
	SELECT repo_name, badge_level
	FROM repo_badging JOIN repo ON repo_badging.repo_id = repo.repo_id
	WHERE repo_badging.repo_id = @repo_id`

// CIIBestPracticesBadge reports the CII badging level per repository.
func (c *Catalog) CIIBestPracticesBadge(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, ciiBestPracticesBadgeGroupSQL, ciiBestPracticesBadgeRepoSQL, p.args(scope, c.now()))
}

const averageIssueResolutionTimeGroupSQL = `
	SELECT issues.repo_id, repo_name,
		AVG(closed_at - created_at)::text AS avg_issue_resolution_time
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id AND closed_at IS NOT NULL
	GROUP BY issues.repo_id, repo_name
	ORDER BY issues.repo_id`

const averageIssueResolutionTimeRepoSQL = `
	SELECT repo_name,
		AVG(closed_at - created_at)::text AS avg_issue_resolution_time
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE issues.repo_id = @repo_id AND closed_at IS NOT NULL
	GROUP BY repo_name`

// AverageIssueResolutionTime reports the mean open-to-close interval
// per repository, as a Postgres interval string.
func (c *Catalog) AverageIssueResolutionTime(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, averageIssueResolutionTimeGroupSQL, averageIssueResolutionTimeRepoSQL, p.args(scope, c.now()))
}

const maintainerResponseDurationGroupSQL = `
	SELECT issues.repo_id, repo_name,
		AVG(EXTRACT(DAY FROM response.first_response_time - issues.created_at)) AS average_days_comment
	FROM issues
	JOIN repo ON issues.repo_id = repo.repo_id
	JOIN (
		SELECT issue_message_ref.issue_id, MIN(message.msg_timestamp) AS first_response_time
		FROM issue_message_ref JOIN message ON message.msg_id = issue_message_ref.msg_id
		GROUP BY issue_message_ref.issue_id
	) response ON response.issue_id = issues.issue_id
	WHERE repo_group_id = @repo_group_id
		AND issues.created_at BETWEEN @begin_date AND @end_date
	GROUP BY issues.repo_id, repo_name
	ORDER BY issues.repo_id`

const maintainerResponseDurationRepoSQL = `
	SELECT repo_name,
		AVG(EXTRACT(DAY FROM response.first_response_time - issues.created_at)) AS average_days_comment
	FROM issues
	JOIN repo ON issues.repo_id = repo.repo_id
	JOIN (
		SELECT issue_message_ref.issue_id, MIN(message.msg_timestamp) AS first_response_time
		FROM issue_message_ref JOIN message ON message.msg_id = issue_message_ref.msg_id
		GROUP BY issue_message_ref.issue_id
	) response ON response.issue_id = issues.issue_id
	WHERE issues.repo_id = @repo_id
		AND issues.created_at BETWEEN @begin_date AND @end_date
	GROUP BY repo_name`

// IssuesMaintainerResponseDuration reports the mean days until the
// first comment on an issue.
func (c *Catalog) IssuesMaintainerResponseDuration(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, maintainerResponseDurationGroupSQL, maintainerResponseDurationRepoSQL, p.args(scope, c.now()))
}

const forksGroupSQL = `
	SELECT repo_info.repo_id, repo_name, data_collection_date AS date, fork_count AS forks
	FROM repo_info JOIN repo ON repo_info.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
	ORDER BY repo_info.repo_id, date`

const forksRepoSQL = `
	SELECT repo_name, data_collection_date AS date, fork_count AS forks
	FROM repo_info JOIN repo ON repo_info.repo_id = repo.repo_id
	WHERE repo_info.repo_id = @repo_id
	ORDER BY date`

// Forks reports the fork count at every collection snapshot.
func (c *Catalog) Forks(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, forksGroupSQL, forksRepoSQL, p.args(scope, c.now()))
}

const forkCountGroupSQL = `
	SELECT a.repo_id, repo_name, a.fork_count AS forks
	FROM repo_info a
	LEFT JOIN repo_info b ON a.repo_id = b.repo_id AND a.repo_info_id < b.repo_info_id
	JOIN repo ON a.repo_id = repo.repo_id
	WHERE b.repo_info_id IS NULL AND repo_group_id = @repo_group_id
	ORDER BY a.repo_id`

const forkCountRepoSQL = `
	SELECT repo_name, fork_count AS forks
	FROM repo_info JOIN repo ON repo_info.repo_id = repo.repo_id
	WHERE repo_info.repo_id = @repo_id
	ORDER BY data_collection_date DESC
	LIMIT 1`

// ForkCount reports the fork count from the latest collection snapshot.
// The group variant anti-joins repo_info against itself to pick each
// repository's newest row.
func (c *Catalog) ForkCount(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, forkCountGroupSQL, forkCountRepoSQL, p.args(scope, c.now()))
}

const languagesGroupSQL = `
	SELECT repo_id, repo_name, primary_language
	FROM repo
	WHERE repo_group_id = @repo_group_id
	ORDER BY repo_id`

const languagesRepoSQL = `
	SELECT repo_name, primary_language
	FROM repo
	WHERE repo_id = @repo_id`

// Languages reports each repository's primary language.
func (c *Catalog) Languages(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, languagesGroupSQL, languagesRepoSQL, p.args(scope, c.now()))
}

const licenseDeclaredGroupSQL = `
	SELECT repo_badging.repo_id, repo_name, license
	FROM repo_badging JOIN repo ON repo_badging.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id`

const licenseDeclaredRepoSQL = `
	SELECT repo_name, license
	FROM repo_badging JOIN repo ON repo_badging.repo_id = repo.repo_id
	WHERE repo_badging.repo_id = @repo_id`

// LicenseDeclared reports the declared license from badging data.
func (c *Catalog) LicenseDeclared(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, licenseDeclaredGroupSQL, licenseDeclaredRepoSQL, p.args(scope, c.now()))
}
