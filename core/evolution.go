package core

import (
	"context"

	"github.com/forgepulse/forgepulse/schema"
)

// Evolution metrics track how a project's activity changes over time:
// commit cadence, new contributor arrival, and the issue lifecycle.

const codeChangesGroupSQL = `
	SELECT commits.repo_id, repo_name, date_trunc(@period, cmt_committer_date) AS date,
		COUNT(cmt_commit_hash) AS commit_count
	FROM commits JOIN repo ON commits.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND cmt_committer_date BETWEEN @begin_date AND @end_date
	GROUP BY commits.repo_id, repo_name, date
	ORDER BY commits.repo_id, date`

const codeChangesRepoSQL = `
	SELECT repo_name, date_trunc(@period, cmt_committer_date) AS date,
		COUNT(cmt_commit_hash) AS commit_count
	FROM commits JOIN repo ON commits.repo_id = repo.repo_id
	WHERE commits.repo_id = @repo_id
		AND cmt_committer_date BETWEEN @begin_date AND @end_date
	GROUP BY repo_name, date
	ORDER BY date`

// CodeChanges counts commits per period within the date range.
func (c *Catalog) CodeChanges(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, codeChangesGroupSQL, codeChangesRepoSQL, p.args(scope, c.now()))
}

const codeChangesLinesGroupSQL = `
	SELECT commits.repo_id, repo_name, date_trunc(@period, cmt_author_date) AS date,
		SUM(cmt_added) AS added, SUM(cmt_removed) AS removed
	FROM commits JOIN repo ON commits.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND cmt_author_date BETWEEN @begin_date AND @end_date
	GROUP BY commits.repo_id, repo_name, date
	ORDER BY commits.repo_id, date`

const codeChangesLinesRepoSQL = `
	SELECT repo_name, date_trunc(@period, cmt_author_date) AS date,
		SUM(cmt_added) AS added, SUM(cmt_removed) AS removed
	FROM commits JOIN repo ON commits.repo_id = repo.repo_id
	WHERE commits.repo_id = @repo_id
		AND cmt_author_date BETWEEN @begin_date AND @end_date
	GROUP BY repo_name, date
	ORDER BY date`

// CodeChangesLines sums lines added and removed per period.
func (c *Catalog) CodeChangesLines(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, codeChangesLinesGroupSQL, codeChangesLinesRepoSQL, p.args(scope, c.now()))
}

const committersNewGroupSQL = `
	SELECT date_trunc(@period, new_date) AS commit_date, COUNT(cmt_author_email) AS count
	FROM (
		SELECT cmt_author_email, MIN(cmt_author_date) AS new_date
		FROM commits
		WHERE repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
		GROUP BY cmt_author_email
	) first_commits
	WHERE new_date BETWEEN @begin_date AND @end_date
	GROUP BY commit_date
	ORDER BY commit_date`

const committersNewRepoSQL = `
	SELECT date_trunc(@period, new_date) AS commit_date, COUNT(cmt_author_email) AS count
	FROM (
		SELECT cmt_author_email, MIN(cmt_author_date) AS new_date
		FROM commits
		WHERE repo_id = @repo_id
		GROUP BY cmt_author_email
	) first_commits
	WHERE new_date BETWEEN @begin_date AND @end_date
	GROUP BY commit_date
	ORDER BY commit_date`

// CommittersNew counts first-time committers per period. A committer is
// new in the period containing their earliest authored commit.
func (c *Catalog) CommittersNew(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, committersNewGroupSQL, committersNewRepoSQL, p.args(scope, c.now()))
}

const issuesFirstTimeOpenedGroupSQL = `
	SELECT date_trunc(@period, first_issue) AS issue_date, COUNT(gh_user_id) AS count
	FROM (
		SELECT gh_user_id, MIN(created_at) AS first_issue
		FROM issues
		WHERE repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
			AND gh_user_id IS NOT NULL
		GROUP BY gh_user_id
	) first_issues
	WHERE first_issue BETWEEN @begin_date AND @end_date
	GROUP BY issue_date
	ORDER BY issue_date`

const issuesFirstTimeOpenedRepoSQL = `
	SELECT date_trunc(@period, first_issue) AS issue_date, COUNT(gh_user_id) AS count
	FROM (
		SELECT gh_user_id, MIN(created_at) AS first_issue
		FROM issues
		WHERE repo_id = @repo_id AND gh_user_id IS NOT NULL
		GROUP BY gh_user_id
	) first_issues
	WHERE first_issue BETWEEN @begin_date AND @end_date
	GROUP BY issue_date
	ORDER BY issue_date`

// IssuesFirstTimeOpened counts users opening their first issue per period.
func (c *Catalog) IssuesFirstTimeOpened(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, issuesFirstTimeOpenedGroupSQL, issuesFirstTimeOpenedRepoSQL, p.args(scope, c.now()))
}

const issuesFirstTimeClosedGroupSQL = `
	SELECT date_trunc(@period, first_close) AS issue_date, COUNT(cntrb_id) AS count
	FROM (
		SELECT issue_events.cntrb_id, MIN(issue_events.created_at) AS first_close
		FROM issue_events JOIN issues ON issues.issue_id = issue_events.issue_id
		WHERE action = 'closed'
			AND issues.repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
			AND issue_events.cntrb_id IS NOT NULL
		GROUP BY issue_events.cntrb_id
	) first_closes
	WHERE first_close BETWEEN @begin_date AND @end_date
	GROUP BY issue_date
	ORDER BY issue_date`

const issuesFirstTimeClosedRepoSQL = `
	SELECT date_trunc(@period, first_close) AS issue_date, COUNT(cntrb_id) AS count
	FROM (
		SELECT issue_events.cntrb_id, MIN(issue_events.created_at) AS first_close
		FROM issue_events JOIN issues ON issues.issue_id = issue_events.issue_id
		WHERE action = 'closed' AND issues.repo_id = @repo_id
			AND issue_events.cntrb_id IS NOT NULL
		GROUP BY issue_events.cntrb_id
	) first_closes
	WHERE first_close BETWEEN @begin_date AND @end_date
	GROUP BY issue_date
	ORDER BY issue_date`

// IssuesFirstTimeClosed counts contributors closing their first issue per period.
func (c *Catalog) IssuesFirstTimeClosed(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, issuesFirstTimeClosedGroupSQL, issuesFirstTimeClosedRepoSQL, p.args(scope, c.now()))
}

const subProjectsGroupSQL = `
	SELECT COUNT(*) AS sub_project_count
	FROM repo
	WHERE repo_group_id = @repo_group_id
		AND repo_added BETWEEN @begin_date AND @end_date`

const subProjectsRepoSQL = `
	SELECT COUNT(*) AS sub_project_count
	FROM repo
	WHERE repo_group_id = (SELECT repo_group_id FROM repo WHERE repo_id = @repo_id)
		AND repo_added BETWEEN @begin_date AND @end_date`

// SubProjects counts repositories added to the scope's group in the range.
func (c *Catalog) SubProjects(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, subProjectsGroupSQL, subProjectsRepoSQL, p.args(scope, c.now()))
}

const contributorsGroupSQL = `
	SELECT id AS user_id,
		SUM(commits) AS commits,
		SUM(issues) AS issues,
		SUM(commit_comments) AS commit_comments,
		SUM(issue_comments) AS issue_comments,
		SUM(commits) + SUM(issues) + SUM(commit_comments) + SUM(issue_comments) AS total
	FROM (
		(SELECT gh_user_id AS id, 0 AS commits, COUNT(*) AS issues,
			0 AS commit_comments, 0 AS issue_comments
		FROM issues
		WHERE repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
			AND created_at BETWEEN @begin_date AND @end_date
			AND gh_user_id IS NOT NULL
		GROUP BY gh_user_id)
		UNION ALL
		(SELECT cmt_ght_author_id AS id, COUNT(*) AS commits, 0 AS issues,
			0 AS commit_comments, 0 AS issue_comments
		FROM commits
		WHERE repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
			AND cmt_author_date BETWEEN @begin_date AND @end_date
			AND cmt_ght_author_id IS NOT NULL
		GROUP BY cmt_ght_author_id)
		UNION ALL
		(SELECT message.cntrb_id AS id, 0 AS commits, 0 AS issues,
			COUNT(*) AS commit_comments, 0 AS issue_comments
		FROM commit_comment_ref
		JOIN commits ON commits.cmt_id = commit_comment_ref.cmt_id
		JOIN message ON message.msg_id = commit_comment_ref.msg_id
		WHERE commits.repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
			AND commit_comment_ref.created_at BETWEEN @begin_date AND @end_date
			AND message.cntrb_id IS NOT NULL
		GROUP BY message.cntrb_id)
		UNION ALL
		(SELECT message.cntrb_id AS id, 0 AS commits, 0 AS issues,
			0 AS commit_comments, COUNT(*) AS issue_comments
		FROM issue_message_ref
		JOIN issues ON issues.issue_id = issue_message_ref.issue_id
		JOIN message ON message.msg_id = issue_message_ref.msg_id
		WHERE issues.repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
			AND message.msg_timestamp BETWEEN @begin_date AND @end_date
			AND message.cntrb_id IS NOT NULL
		GROUP BY message.cntrb_id)
	) contributions
	GROUP BY id
	ORDER BY total DESC`

const contributorsRepoSQL = `
	SELECT id AS user_id,
		SUM(commits) AS commits,
		SUM(issues) AS issues,
		SUM(commit_comments) AS commit_comments,
		SUM(issue_comments) AS issue_comments,
		SUM(commits) + SUM(issues) + SUM(commit_comments) + SUM(issue_comments) AS total
	FROM (
		(SELECT gh_user_id AS id, 0 AS commits, COUNT(*) AS issues,
			0 AS commit_comments, 0 AS issue_comments
		FROM issues
		WHERE repo_id = @repo_id
			AND created_at BETWEEN @begin_date AND @end_date
			AND gh_user_id IS NOT NULL
		GROUP BY gh_user_id)
		UNION ALL
		(SELECT cmt_ght_author_id AS id, COUNT(*) AS commits, 0 AS issues,
			0 AS commit_comments, 0 AS issue_comments
		FROM commits
		WHERE repo_id = @repo_id
			AND cmt_author_date BETWEEN @begin_date AND @end_date
			AND cmt_ght_author_id IS NOT NULL
		GROUP BY cmt_ght_author_id)
		UNION ALL
		(SELECT message.cntrb_id AS id, 0 AS commits, 0 AS issues,
			COUNT(*) AS commit_comments, 0 AS issue_comments
		FROM commit_comment_ref
		JOIN commits ON commits.cmt_id = commit_comment_ref.cmt_id
		JOIN message ON message.msg_id = commit_comment_ref.msg_id
		WHERE commits.repo_id = @repo_id
			AND commit_comment_ref.created_at BETWEEN @begin_date AND @end_date
			AND message.cntrb_id IS NOT NULL
		GROUP BY message.cntrb_id)
		UNION ALL
		(SELECT message.cntrb_id AS id, 0 AS commits, 0 AS issues,
			0 AS commit_comments, COUNT(*) AS issue_comments
		FROM issue_message_ref
		JOIN issues ON issues.issue_id = issue_message_ref.issue_id
		JOIN message ON message.msg_id = issue_message_ref.msg_id
		WHERE issues.repo_id = @repo_id
			AND message.msg_timestamp BETWEEN @begin_date AND @end_date
			AND message.cntrb_id IS NOT NULL
		GROUP BY message.cntrb_id)
	) contributions
	GROUP BY id
	ORDER BY total DESC`

// Contributors tallies per-user activity (commits, issues, comments)
// across all mined sources, ordered by total contributions.
func (c *Catalog) Contributors(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, contributorsGroupSQL, contributorsRepoSQL, p.args(scope, c.now()))
}

const contributorsNewGroupSQL = `
	SELECT date_trunc(@period, first_at) AS contribute_at, COUNT(id) AS count
	FROM (
		SELECT id, MIN(created_at) AS first_at
		FROM (
			(SELECT gh_user_id AS id, MIN(created_at) AS created_at
			FROM issues
			WHERE repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
				AND gh_user_id IS NOT NULL
			GROUP BY gh_user_id)
			UNION ALL
			(SELECT cmt_ght_author_id AS id, MIN(cmt_author_date) AS created_at
			FROM commits
			WHERE repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
				AND cmt_ght_author_id IS NOT NULL
			GROUP BY cmt_ght_author_id)
			UNION ALL
			(SELECT message.cntrb_id AS id, MIN(commit_comment_ref.created_at) AS created_at
			FROM commit_comment_ref
			JOIN commits ON commits.cmt_id = commit_comment_ref.cmt_id
			JOIN message ON message.msg_id = commit_comment_ref.msg_id
			WHERE commits.repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
				AND message.cntrb_id IS NOT NULL
			GROUP BY message.cntrb_id)
			UNION ALL
			(SELECT message.cntrb_id AS id, MIN(message.msg_timestamp) AS created_at
			FROM issue_message_ref
			JOIN issues ON issues.issue_id = issue_message_ref.issue_id
			JOIN message ON message.msg_id = issue_message_ref.msg_id
			WHERE issues.repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
				AND message.cntrb_id IS NOT NULL
			GROUP BY message.cntrb_id)
		) firsts
		GROUP BY id
	) first_contributions
	WHERE first_at BETWEEN @begin_date AND @end_date
	GROUP BY contribute_at
	ORDER BY contribute_at`

const contributorsNewRepoSQL = `
	SELECT date_trunc(@period, first_at) AS contribute_at, COUNT(id) AS count
	FROM (
		SELECT id, MIN(created_at) AS first_at
		FROM (
			(SELECT gh_user_id AS id, MIN(created_at) AS created_at
			FROM issues
			WHERE repo_id = @repo_id AND gh_user_id IS NOT NULL
			GROUP BY gh_user_id)
			UNION ALL
			(SELECT cmt_ght_author_id AS id, MIN(cmt_author_date) AS created_at
			FROM commits
			WHERE repo_id = @repo_id AND cmt_ght_author_id IS NOT NULL
			GROUP BY cmt_ght_author_id)
			UNION ALL
			(SELECT message.cntrb_id AS id, MIN(commit_comment_ref.created_at) AS created_at
			FROM commit_comment_ref
			JOIN commits ON commits.cmt_id = commit_comment_ref.cmt_id
			JOIN message ON message.msg_id = commit_comment_ref.msg_id
			WHERE commits.repo_id = @repo_id AND message.cntrb_id IS NOT NULL
			GROUP BY message.cntrb_id)
			UNION ALL
			(SELECT message.cntrb_id AS id, MIN(message.msg_timestamp) AS created_at
			FROM issue_message_ref
			JOIN issues ON issues.issue_id = issue_message_ref.issue_id
			JOIN message ON message.msg_id = issue_message_ref.msg_id
			WHERE issues.repo_id = @repo_id AND message.cntrb_id IS NOT NULL
			GROUP BY message.cntrb_id)
		) firsts
		GROUP BY id
	) first_contributions
	WHERE first_at BETWEEN @begin_date AND @end_date
	GROUP BY contribute_at
	ORDER BY contribute_at`

// ContributorsNew counts users whose earliest contribution of any kind
// falls in each period.
func (c *Catalog) ContributorsNew(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, contributorsNewGroupSQL, contributorsNewRepoSQL, p.args(scope, c.now()))
}

const issuesNewGroupSQL = `
	SELECT issues.repo_id, repo_name, date_trunc(@period, created_at) AS date, COUNT(issue_id) AS issues
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND created_at BETWEEN @begin_date AND @end_date
	GROUP BY issues.repo_id, repo_name, date
	ORDER BY issues.repo_id, date`

const issuesNewRepoSQL = `
	SELECT repo_name, date_trunc(@period, created_at) AS date, COUNT(issue_id) AS issues
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE issues.repo_id = @repo_id
		AND created_at BETWEEN @begin_date AND @end_date
	GROUP BY repo_name, date
	ORDER BY date`

// IssuesNew counts issues opened per period.
func (c *Catalog) IssuesNew(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, issuesNewGroupSQL, issuesNewRepoSQL, p.args(scope, c.now()))
}

const issuesActiveGroupSQL = `
	SELECT issues.repo_id, repo_name, date_trunc(@period, issue_events.created_at) AS date,
		COUNT(issues.issue_id) AS issues
	FROM issues
	JOIN repo ON issues.repo_id = repo.repo_id
	JOIN issue_events ON issues.issue_id = issue_events.issue_id
	WHERE repo_group_id = @repo_group_id
		AND issue_events.created_at BETWEEN @begin_date AND @end_date
	GROUP BY issues.repo_id, repo_name, date
	ORDER BY issues.repo_id, date`

const issuesActiveRepoSQL = `
	SELECT repo_name, date_trunc(@period, issue_events.created_at) AS date,
		COUNT(issues.issue_id) AS issues
	FROM issues
	JOIN repo ON issues.repo_id = repo.repo_id
	JOIN issue_events ON issues.issue_id = issue_events.issue_id
	WHERE issues.repo_id = @repo_id
		AND issue_events.created_at BETWEEN @begin_date AND @end_date
	GROUP BY repo_name, date
	ORDER BY date`

// IssuesActive counts issues with any event activity per period.
func (c *Catalog) IssuesActive(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, issuesActiveGroupSQL, issuesActiveRepoSQL, p.args(scope, c.now()))
}

const issuesClosedGroupSQL = `
	SELECT issues.repo_id, repo_name, date_trunc(@period, closed_at) AS date, COUNT(issue_id) AS issues
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND closed_at IS NOT NULL
		AND closed_at BETWEEN @begin_date AND @end_date
	GROUP BY issues.repo_id, repo_name, date
	ORDER BY issues.repo_id, date`

const issuesClosedRepoSQL = `
	SELECT repo_name, date_trunc(@period, closed_at) AS date, COUNT(issue_id) AS issues
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE issues.repo_id = @repo_id
		AND closed_at IS NOT NULL
		AND closed_at BETWEEN @begin_date AND @end_date
	GROUP BY repo_name, date
	ORDER BY date`

// IssuesClosed counts issues closed per period.
func (c *Catalog) IssuesClosed(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, issuesClosedGroupSQL, issuesClosedRepoSQL, p.args(scope, c.now()))
}

const issueDurationGroupSQL = `
	SELECT issues.repo_id, repo_name, issue_id, created_at, closed_at,
		(closed_at - created_at) AS duration
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND closed_at IS NOT NULL
		AND created_at BETWEEN @begin_date AND @end_date
	ORDER BY issues.repo_id, issue_id`

const issueDurationRepoSQL = `
	SELECT repo_name, issue_id, created_at, closed_at,
		(closed_at - created_at) AS duration
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE issues.repo_id = @repo_id
		AND closed_at IS NOT NULL
		AND created_at BETWEEN @begin_date AND @end_date
	ORDER BY issue_id`

// IssueDuration lists closed issues with their open-to-close duration.
func (c *Catalog) IssueDuration(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, issueDurationGroupSQL, issueDurationRepoSQL, p.args(scope, c.now()))
}

const issueParticipantsGroupSQL = `
	SELECT issues.repo_id, repo_name, derived.issue_id, issues.created_at,
		COUNT(DISTINCT derived.cntrb_id) AS participants
	FROM (
		SELECT issue_id, cntrb_id FROM issues WHERE cntrb_id IS NOT NULL
		UNION
		SELECT issue_message_ref.issue_id, message.cntrb_id
		FROM issue_message_ref JOIN message ON message.msg_id = issue_message_ref.msg_id
		WHERE message.cntrb_id IS NOT NULL
	) derived
	JOIN issues ON issues.issue_id = derived.issue_id
	JOIN repo ON issues.repo_id = repo.repo_id
	WHERE issues.repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
		AND issues.created_at BETWEEN @begin_date AND @end_date
	GROUP BY issues.repo_id, repo_name, derived.issue_id, issues.created_at
	ORDER BY issues.repo_id, issues.created_at`

const issueParticipantsRepoSQL = `
	SELECT repo_name, derived.issue_id, issues.created_at,
		COUNT(DISTINCT derived.cntrb_id) AS participants
	FROM (
		SELECT issue_id, cntrb_id FROM issues WHERE cntrb_id IS NOT NULL
		UNION
		SELECT issue_message_ref.issue_id, message.cntrb_id
		FROM issue_message_ref JOIN message ON message.msg_id = issue_message_ref.msg_id
		WHERE message.cntrb_id IS NOT NULL
	) derived
	JOIN issues ON issues.issue_id = derived.issue_id
	JOIN repo ON issues.repo_id = repo.repo_id
	WHERE issues.repo_id = @repo_id
		AND issues.created_at BETWEEN @begin_date AND @end_date
	GROUP BY repo_name, derived.issue_id, issues.created_at
	ORDER BY issues.created_at`

// IssueParticipants counts distinct contributors (reporter plus
// commenters) per issue.
func (c *Catalog) IssueParticipants(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, issueParticipantsGroupSQL, issueParticipantsRepoSQL, p.args(scope, c.now()))
}

const issueBacklogGroupSQL = `
	SELECT issues.repo_id, repo_name, COUNT(issue_id) AS issue_backlog
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND issue_state = 'open'
		AND created_at BETWEEN @begin_date AND @end_date
	GROUP BY issues.repo_id, repo_name
	ORDER BY issues.repo_id`

const issueBacklogRepoSQL = `
	SELECT repo_name, COUNT(issue_id) AS issue_backlog
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE issues.repo_id = @repo_id
		AND issue_state = 'open'
		AND created_at BETWEEN @begin_date AND @end_date
	GROUP BY repo_name`

// IssueBacklog counts issues still open.
func (c *Catalog) IssueBacklog(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, issueBacklogGroupSQL, issueBacklogRepoSQL, p.args(scope, c.now()))
}

const issueThroughputGroupSQL = `
	SELECT (closed.closed_count::REAL / NULLIF(total.total_count, 0)::REAL) AS throughput
	FROM (
		SELECT COUNT(issue_id) AS closed_count
		FROM issues
		WHERE repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
			AND issue_state = 'closed'
			AND created_at BETWEEN @begin_date AND @end_date
	) closed, (
		SELECT COUNT(issue_id) AS total_count
		FROM issues
		WHERE repo_id IN (SELECT repo_id FROM repo WHERE repo_group_id = @repo_group_id)
			AND created_at BETWEEN @begin_date AND @end_date
	) total`

const issueThroughputRepoSQL = `
	SELECT (closed.closed_count::REAL / NULLIF(total.total_count, 0)::REAL) AS throughput
	FROM (
		SELECT COUNT(issue_id) AS closed_count
		FROM issues
		WHERE repo_id = @repo_id
			AND issue_state = 'closed'
			AND created_at BETWEEN @begin_date AND @end_date
	) closed, (
		SELECT COUNT(issue_id) AS total_count
		FROM issues
		WHERE repo_id = @repo_id
			AND created_at BETWEEN @begin_date AND @end_date
	) total`

// IssueThroughput reports the ratio of closed issues to all issues
// opened in the range. NULL when no issues exist.
func (c *Catalog) IssueThroughput(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, issueThroughputGroupSQL, issueThroughputRepoSQL, p.args(scope, c.now()))
}

const issuesOpenAgeGroupSQL = `
	SELECT issues.repo_id, repo_name, issue_id, date_trunc(@period, created_at) AS date,
		EXTRACT(DAY FROM @ref_date::timestamp - created_at) AS open_date
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND issue_state = 'open'
		AND created_at BETWEEN @begin_date AND @end_date
	ORDER BY open_date DESC`

const issuesOpenAgeRepoSQL = `
	SELECT repo_name, issue_id, date_trunc(@period, created_at) AS date,
		EXTRACT(DAY FROM @ref_date::timestamp - created_at) AS open_date
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE issues.repo_id = @repo_id
		AND issue_state = 'open'
		AND created_at BETWEEN @begin_date AND @end_date
	ORDER BY open_date DESC`

// IssuesOpenAge lists open issues with their age in days against the
// catalog's reference clock.
func (c *Catalog) IssuesOpenAge(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, issuesOpenAgeGroupSQL, issuesOpenAgeRepoSQL, p.args(scope, c.now()))
}

const issuesClosedResolutionDurationGroupSQL = `
	SELECT issues.repo_id, repo_name, gh_issue_number, issue_title,
		date_trunc(@period, created_at) AS created_at,
		date_trunc(@period, closed_at) AS closed_at,
		EXTRACT(DAY FROM closed_at - created_at) AS diffdate
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
		AND closed_at IS NOT NULL
		AND created_at BETWEEN @begin_date AND @end_date
	ORDER BY issues.repo_id, gh_issue_number`

const issuesClosedResolutionDurationRepoSQL = `
	SELECT repo_name, gh_issue_number, issue_title,
		date_trunc(@period, created_at) AS created_at,
		date_trunc(@period, closed_at) AS closed_at,
		EXTRACT(DAY FROM closed_at - created_at) AS diffdate
	FROM issues JOIN repo ON issues.repo_id = repo.repo_id
	WHERE issues.repo_id = @repo_id
		AND closed_at IS NOT NULL
		AND created_at BETWEEN @begin_date AND @end_date
	ORDER BY gh_issue_number`

// IssuesClosedResolutionDuration lists closed issues with their
// resolution time in whole days.
func (c *Catalog) IssuesClosedResolutionDuration(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, issuesClosedResolutionDurationGroupSQL, issuesClosedResolutionDurationRepoSQL, p.args(scope, c.now()))
}
