package core

import (
	"context"

	"github.com/forgepulse/forgepulse/schema"
)

// Value metrics track popularity signals from forge snapshots.

const starsGroupSQL = `
	SELECT repo_info.repo_id, repo_name, data_collection_date AS date, stars_count AS stars
	FROM repo_info JOIN repo ON repo_info.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
	ORDER BY repo_info.repo_id, date`

const starsRepoSQL = `
	SELECT repo_name, data_collection_date AS date, stars_count AS stars
	FROM repo_info JOIN repo ON repo_info.repo_id = repo.repo_id
	WHERE repo_info.repo_id = @repo_id
	ORDER BY date`

// Stars reports the star count at every collection snapshot.
func (c *Catalog) Stars(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, starsGroupSQL, starsRepoSQL, p.args(scope, c.now()))
}

const starsCountGroupSQL = `
	SELECT a.repo_id, repo_name, a.stars_count AS stars
	FROM repo_info a
	LEFT JOIN repo_info b ON a.repo_id = b.repo_id AND a.repo_info_id < b.repo_info_id
	JOIN repo ON a.repo_id = repo.repo_id
	WHERE b.repo_info_id IS NULL AND repo_group_id = @repo_group_id
	ORDER BY a.repo_id`

const starsCountRepoSQL = `
	SELECT repo_name, stars_count AS stars
	FROM repo_info JOIN repo ON repo_info.repo_id = repo.repo_id
	WHERE repo_info.repo_id = @repo_id
	ORDER BY data_collection_date DESC
	LIMIT 1`

// StarsCount reports the star count from the latest collection snapshot.
func (c *Catalog) StarsCount(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, starsCountGroupSQL, starsCountRepoSQL, p.args(scope, c.now()))
}

const watchersGroupSQL = `
	SELECT repo_info.repo_id, repo_name, data_collection_date AS date, watchers_count AS watchers
	FROM repo_info JOIN repo ON repo_info.repo_id = repo.repo_id
	WHERE repo_group_id = @repo_group_id
	ORDER BY repo_info.repo_id, date`

const watchersRepoSQL = `
	SELECT repo_name, data_collection_date AS date, watchers_count AS watchers
	FROM repo_info JOIN repo ON repo_info.repo_id = repo.repo_id
	WHERE repo_info.repo_id = @repo_id
	ORDER BY date`

// Watchers reports the watcher count at every collection snapshot.
func (c *Catalog) Watchers(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, watchersGroupSQL, watchersRepoSQL, p.args(scope, c.now()))
}

const watchersCountGroupSQL = `
	SELECT a.repo_id, repo_name, a.watchers_count AS watchers
	FROM repo_info a
	LEFT JOIN repo_info b ON a.repo_id = b.repo_id AND a.repo_info_id < b.repo_info_id
	JOIN repo ON a.repo_id = repo.repo_id
	WHERE b.repo_info_id IS NULL AND repo_group_id = @repo_group_id
	ORDER BY a.repo_id`

const watchersCountRepoSQL = `
	SELECT repo_name, watchers_count AS watchers
	FROM repo_info JOIN repo ON repo_info.repo_id = repo.repo_id
	WHERE repo_info.repo_id = @repo_id
	ORDER BY data_collection_date DESC
	LIMIT 1`

// WatchersCount reports the watcher count from the latest collection snapshot.
func (c *Catalog) WatchersCount(ctx context.Context, scope Scope, p Params) (schema.Table, error) {
	return c.scoped(ctx, scope, watchersCountGroupSQL, watchersCountRepoSQL, p.args(scope, c.now()))
}
