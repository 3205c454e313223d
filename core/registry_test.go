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

func TestRegistryCompleteness(t *testing.T) {
	names := []string{
		"code-changes", "code-changes-lines", "committers-new",
		"issues-first-time-opened", "issues-first-time-closed",
		"sub-projects", "contributors", "contributors-new",
		"issues-new", "issues-active", "issues-closed",
		"issue-duration", "issue-participants", "issue-backlog",
		"issue-throughput", "issues-open-age", "issues-closed-resolution-duration",
		"cii-best-practices-badge", "average-issue-resolution-time",
		"issues-maintainer-response-duration", "forks", "fork-count",
		"languages", "license-declared",
		"stars", "stars-count", "watchers", "watchers-count",
		"lines-changed-by-author", "open-issues-count", "closed-issues-count",
		"annual-commit-count-ranked-by-new-repo", "annual-loc-count-ranked-by-new-repo",
		"annual-commit-count-ranked-by-repo", "annual-loc-count-ranked-by-repo",
		"top-committers",
		"repo-groups", "downloaded-repos", "repos-in-group",
		"repos-for-dosocs", "get-issues",
	}
	assert.Len(t, registry, len(names))

	for _, name := range names {
		d, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, d.Name)
		assert.Contains(t, schema.ValidMetricCategories, d.Category)
		assert.NotEmpty(t, d.Summary)
		assert.NotNil(t, d.Run)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("no-such-metric")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contract.ErrInvalidArgument))
}

func TestListOrdering(t *testing.T) {
	all := List()
	require.Len(t, all, len(registry))

	order := map[schema.MetricCategory]int{}
	for i, cat := range schema.AllMetricCategories {
		order[cat] = i
	}
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if order[prev.Category] == order[cur.Category] {
			assert.Less(t, prev.Name, cur.Name)
		} else {
			assert.Less(t, order[prev.Category], order[cur.Category])
		}
	}
	assert.Equal(t, schema.EvolutionCategory, all[0].Category)
}

func TestRegistryDispatch(t *testing.T) {
	fake := &fakeWarehouse{}
	catalog := NewCatalogWithClock(fake, fixedClock(testNow))

	d, err := Lookup("issues-new")
	require.NoError(t, err)

	_, err = d.Run(context.Background(), catalog, Request{Scope: RepoScope(3)})
	require.NoError(t, err)
	assert.Contains(t, fake.sqls[0], "issues.repo_id = @repo_id")
}
