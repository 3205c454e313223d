package core

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/forgepulse/forgepulse/schema"
	"github.com/jackc/pgx/v5"
)

// Utility lookups: group and repository inventories plus issue listings.
// These power the groups/repos commands and are also exposed as
// catalog metrics where the signature allows it.

const repoGroupsSQL = `
	SELECT repo_group_id, rg_name, rg_description, rg_website, rg_recache, rg_type, rg_last_modified
	FROM repo_groups
	ORDER BY repo_group_id`

// RepoGroups lists every repository group in the warehouse.
func (c *Catalog) RepoGroups(ctx context.Context) (schema.Table, error) {
	return c.store.Query(ctx, repoGroupsSQL, nil)
}

const downloadedReposSQL = `
	SELECT repo.repo_id, repo_name, repo_git AS url, repo_status, rg_name,
		COALESCE(commit_counts.commits_all_time, 0) AS commits_all_time,
		COALESCE(issue_counts.issues_all_time, 0) AS issues_all_time
	FROM repo
	JOIN repo_groups ON repo.repo_group_id = repo_groups.repo_group_id
	LEFT OUTER JOIN (
		SELECT repo_id, COUNT(*) AS commits_all_time FROM commits GROUP BY repo_id
	) commit_counts ON repo.repo_id = commit_counts.repo_id
	LEFT OUTER JOIN (
		SELECT repo_id, COUNT(*) AS issues_all_time FROM issues GROUP BY repo_id
	) issue_counts ON repo.repo_id = issue_counts.repo_id
	ORDER BY commits_all_time DESC`

// DownloadedRepos lists every mined repository with lifetime commit and
// issue totals. The git URL is stripped of its scheme and a base64_url
// column is derived for cache-key style lookups.
func (c *Catalog) DownloadedRepos(ctx context.Context) (schema.Table, error) {
	table, err := c.store.Query(ctx, downloadedReposSQL, nil)
	if err != nil {
		return schema.Table{}, err
	}
	return appendBase64URL(table), nil
}

// appendBase64URL rewrites the url column without its scheme and adds a
// base64_url column encoding the stripped value.
func appendBase64URL(table schema.Table) schema.Table {
	urlIdx := table.ColumnIndex("url")
	if urlIdx < 0 {
		return table
	}
	table.Columns = append(table.Columns, "base64_url")
	for i, row := range table.Rows {
		raw, _ := row[urlIdx].(string)
		if j := strings.Index(raw, "//"); j >= 0 {
			raw = raw[j+2:]
		}
		row[urlIdx] = raw
		table.Rows[i] = append(row, base64.StdEncoding.EncodeToString([]byte(raw)))
	}
	return table
}

const reposInGroupSQL = `
	SELECT repo.repo_id, repo_name, repo_git AS url, repo_status, rg_name,
		COALESCE(commit_counts.commits_all_time, 0) AS commits_all_time,
		COALESCE(issue_counts.issues_all_time, 0) AS issues_all_time
	FROM repo
	JOIN repo_groups ON repo.repo_group_id = repo_groups.repo_group_id
	LEFT OUTER JOIN (
		SELECT repo_id, COUNT(*) AS commits_all_time FROM commits GROUP BY repo_id
	) commit_counts ON repo.repo_id = commit_counts.repo_id
	LEFT OUTER JOIN (
		SELECT repo_id, COUNT(*) AS issues_all_time FROM issues GROUP BY repo_id
	) issue_counts ON repo.repo_id = issue_counts.repo_id
	WHERE repo.repo_group_id = @repo_group_id
	ORDER BY commits_all_time DESC`

// ReposInGroup lists the repositories of one group with lifetime totals.
func (c *Catalog) ReposInGroup(ctx context.Context, groupID int64) (schema.Table, error) {
	return c.store.Query(ctx, reposInGroupSQL, pgx.NamedArgs{"repo_group_id": groupID})
}

const getRepoSQL = `
	SELECT repo.repo_id, repo.repo_group_id, rg_name
	FROM repo JOIN repo_groups ON repo.repo_group_id = repo_groups.repo_group_id
	WHERE repo_name = @repo AND repo_path LIKE @owner`

// GetRepo resolves a repository by owner and name. The owner matches
// the mined repo_path, which stores "<host>/<owner>/" style prefixes.
func (c *Catalog) GetRepo(ctx context.Context, owner, name string) (schema.Table, error) {
	return c.store.Query(ctx, getRepoSQL, pgx.NamedArgs{
		"repo":  name,
		"owner": fmt.Sprintf("%%%s_", owner),
	})
}

const reposForDosocsSQL = `
	SELECT b.repo_id, CONCAT(a.value || b.repo_group_id || chr(47) || b.repo_path || b.repo_name) AS path
	FROM settings a, repo b
	WHERE a.setting = 'repo_directory'`

// ReposForDosocs lists on-disk clone paths built from the
// repo_directory setting, for license scanners that read working trees.
func (c *Catalog) ReposForDosocs(ctx context.Context) (schema.Table, error) {
	return c.store.Query(ctx, reposForDosocsSQL, nil)
}

const getIssuesGroupSQL = `
	SELECT issues.repo_id, repo_name, issue_title, issues.issue_id, html_url, issue_state AS status,
		issues.created_at AS date, COUNT(issue_events.event_id) AS events,
		MAX(issue_events.created_at) AS last_event_date,
		EXTRACT(DAY FROM @ref_date::timestamp - issues.created_at) AS open_day
	FROM issues
	JOIN repo ON issues.repo_id = repo.repo_id
	LEFT JOIN issue_events ON issues.issue_id = issue_events.issue_id
	WHERE repo_group_id = @repo_group_id
	GROUP BY issues.repo_id, repo_name, issue_title, issues.issue_id, html_url, issue_state, issues.created_at
	ORDER BY open_day DESC`

const getIssuesRepoSQL = `
	SELECT repo_name, issue_title, issues.issue_id, html_url, issue_state AS status,
		issues.created_at AS date, COUNT(issue_events.event_id) AS events,
		MAX(issue_events.created_at) AS last_event_date,
		EXTRACT(DAY FROM @ref_date::timestamp - issues.created_at) AS open_day
	FROM issues
	JOIN repo ON issues.repo_id = repo.repo_id
	LEFT JOIN issue_events ON issues.issue_id = issue_events.issue_id
	WHERE issues.repo_id = @repo_id
	GROUP BY repo_name, issue_title, issues.issue_id, html_url, issue_state, issues.created_at
	ORDER BY open_day DESC`

// GetIssues lists issues with their event counts and days open against
// the reference clock.
func (c *Catalog) GetIssues(ctx context.Context, scope Scope) (schema.Table, error) {
	args := pgx.NamedArgs{"ref_date": c.now()}
	scope.bind(args)
	return c.scoped(ctx, scope, getIssuesGroupSQL, getIssuesRepoSQL, args)
}
