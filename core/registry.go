package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/schema"
)

// Request carries every parameter a catalog metric may consume. Each
// runner picks the fields it needs and ignores the rest.
type Request struct {
	Scope        Scope
	Params       Params
	Year         int
	Threshold    float64
	Timeframe    schema.Timeframe
	CalendarYear int
}

// Runner executes one catalog metric.
type Runner func(ctx context.Context, c *Catalog, req Request) (schema.Table, error)

// Descriptor describes one catalog metric for listing and dispatch.
type Descriptor struct {
	Name     string
	Category schema.MetricCategory
	Summary  string
	Run      Runner
}

// scopedRunner adapts the common (scope, params) metric shape.
func scopedRunner(fn func(*Catalog, context.Context, Scope, Params) (schema.Table, error)) Runner {
	return func(ctx context.Context, c *Catalog, req Request) (schema.Table, error) {
		return fn(c, ctx, req.Scope, req.Params)
	}
}

var registry = map[string]Descriptor{}

func register(name string, category schema.MetricCategory, summary string, run Runner) {
	registry[name] = Descriptor{Name: name, Category: category, Summary: summary, Run: run}
}

func init() {
	// Evolution
	register("code-changes", schema.EvolutionCategory, "Commits per period",
		scopedRunner((*Catalog).CodeChanges))
	register("code-changes-lines", schema.EvolutionCategory, "Lines added and removed per period",
		scopedRunner((*Catalog).CodeChangesLines))
	register("committers-new", schema.EvolutionCategory, "First-time committers per period",
		scopedRunner((*Catalog).CommittersNew))
	register("issues-first-time-opened", schema.EvolutionCategory, "Users opening their first issue per period",
		scopedRunner((*Catalog).IssuesFirstTimeOpened))
	register("issues-first-time-closed", schema.EvolutionCategory, "Contributors closing their first issue per period",
		scopedRunner((*Catalog).IssuesFirstTimeClosed))
	register("sub-projects", schema.EvolutionCategory, "Repositories added to the group in the range",
		scopedRunner((*Catalog).SubProjects))
	register("contributors", schema.EvolutionCategory, "Per-user contribution totals across all sources",
		scopedRunner((*Catalog).Contributors))
	register("contributors-new", schema.EvolutionCategory, "Users making their first contribution per period",
		scopedRunner((*Catalog).ContributorsNew))
	register("issues-new", schema.EvolutionCategory, "Issues opened per period",
		scopedRunner((*Catalog).IssuesNew))
	register("issues-active", schema.EvolutionCategory, "Issues with event activity per period",
		scopedRunner((*Catalog).IssuesActive))
	register("issues-closed", schema.EvolutionCategory, "Issues closed per period",
		scopedRunner((*Catalog).IssuesClosed))
	register("issue-duration", schema.EvolutionCategory, "Open-to-close duration per closed issue",
		scopedRunner((*Catalog).IssueDuration))
	register("issue-participants", schema.EvolutionCategory, "Distinct participants per issue",
		scopedRunner((*Catalog).IssueParticipants))
	register("issue-backlog", schema.EvolutionCategory, "Open issue counts",
		scopedRunner((*Catalog).IssueBacklog))
	register("issue-throughput", schema.EvolutionCategory, "Ratio of closed to opened issues",
		scopedRunner((*Catalog).IssueThroughput))
	register("issues-open-age", schema.EvolutionCategory, "Open issues with their age in days",
		scopedRunner((*Catalog).IssuesOpenAge))
	register("issues-closed-resolution-duration", schema.EvolutionCategory, "Resolution time in days per closed issue",
		scopedRunner((*Catalog).IssuesClosedResolutionDuration))

	// Risk
	register("cii-best-practices-badge", schema.RiskCategory, "CII badging level per repository",
		scopedRunner((*Catalog).CIIBestPracticesBadge))
	register("average-issue-resolution-time", schema.RiskCategory, "Mean open-to-close interval per repository",
		scopedRunner((*Catalog).AverageIssueResolutionTime))
	register("issues-maintainer-response-duration", schema.RiskCategory, "Mean days until first issue comment",
		scopedRunner((*Catalog).IssuesMaintainerResponseDuration))
	register("forks", schema.RiskCategory, "Fork count per collection snapshot",
		scopedRunner((*Catalog).Forks))
	register("fork-count", schema.RiskCategory, "Fork count at the latest snapshot",
		scopedRunner((*Catalog).ForkCount))
	register("languages", schema.RiskCategory, "Primary language per repository",
		scopedRunner((*Catalog).Languages))
	register("license-declared", schema.RiskCategory, "Declared license per repository",
		scopedRunner((*Catalog).LicenseDeclared))

	// Value
	register("stars", schema.ValueCategory, "Star count per collection snapshot",
		scopedRunner((*Catalog).Stars))
	register("stars-count", schema.ValueCategory, "Star count at the latest snapshot",
		scopedRunner((*Catalog).StarsCount))
	register("watchers", schema.ValueCategory, "Watcher count per collection snapshot",
		scopedRunner((*Catalog).Watchers))
	register("watchers-count", schema.ValueCategory, "Watcher count at the latest snapshot",
		scopedRunner((*Catalog).WatchersCount))

	// Experimental
	register("lines-changed-by-author", schema.ExperimentalCategory, "Line churn per author and date",
		scopedRunner((*Catalog).LinesChangedByAuthor))
	register("open-issues-count", schema.ExperimentalCategory, "Open issues per week of creation",
		scopedRunner((*Catalog).OpenIssuesCount))
	register("closed-issues-count", schema.ExperimentalCategory, "Closed issues per week of creation",
		scopedRunner((*Catalog).ClosedIssuesCount))
	register("annual-commit-count-ranked-by-new-repo", schema.ExperimentalCategory, "Top 10 repos added in a year by commits",
		func(ctx context.Context, c *Catalog, req Request) (schema.Table, error) {
			return c.AnnualCommitCountRankedByNewRepo(ctx, req.Scope, req.CalendarYear)
		})
	register("annual-loc-count-ranked-by-new-repo", schema.ExperimentalCategory, "Top 10 repos added in a year by net LOC",
		func(ctx context.Context, c *Catalog, req Request) (schema.Table, error) {
			return c.AnnualLOCCountRankedByNewRepo(ctx, req.Scope, req.CalendarYear)
		})
	register("annual-commit-count-ranked-by-repo", schema.ExperimentalCategory, "Top 10 repos by commits for a timeframe",
		func(ctx context.Context, c *Catalog, req Request) (schema.Table, error) {
			return c.AnnualCommitCountRankedByRepo(ctx, req.Scope, req.Timeframe)
		})
	register("annual-loc-count-ranked-by-repo", schema.ExperimentalCategory, "Top 10 repos by net LOC for a timeframe",
		func(ctx context.Context, c *Catalog, req Request) (schema.Table, error) {
			return c.AnnualLOCCountRankedByRepo(ctx, req.Scope, req.Timeframe)
		})
	register("top-committers", schema.ExperimentalCategory, "Smallest committer set covering a share of annual commits",
		func(ctx context.Context, c *Catalog, req Request) (schema.Table, error) {
			return c.TopCommitters(ctx, req.Scope, req.Year, req.Threshold)
		})

	// Utility
	register("repo-groups", schema.UtilityCategory, "All repository groups",
		func(ctx context.Context, c *Catalog, _ Request) (schema.Table, error) {
			return c.RepoGroups(ctx)
		})
	register("downloaded-repos", schema.UtilityCategory, "All mined repositories with lifetime totals",
		func(ctx context.Context, c *Catalog, _ Request) (schema.Table, error) {
			return c.DownloadedRepos(ctx)
		})
	register("repos-in-group", schema.UtilityCategory, "Repositories of one group with lifetime totals",
		func(ctx context.Context, c *Catalog, req Request) (schema.Table, error) {
			return c.ReposInGroup(ctx, req.Scope.GroupID())
		})
	register("repos-for-dosocs", schema.UtilityCategory, "On-disk clone paths from the repo_directory setting",
		func(ctx context.Context, c *Catalog, _ Request) (schema.Table, error) {
			return c.ReposForDosocs(ctx)
		})
	register("get-issues", schema.UtilityCategory, "Issues with event counts and days open",
		func(ctx context.Context, c *Catalog, req Request) (schema.Table, error) {
			return c.GetIssues(ctx, req.Scope)
		})
}

// Lookup resolves a metric by name.
func Lookup(name string) (Descriptor, error) {
	d, ok := registry[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: unknown metric '%s'", contract.ErrInvalidArgument, name)
	}
	return d, nil
}

// List returns all descriptors ordered by category then name.
func List() []Descriptor {
	order := make(map[schema.MetricCategory]int, len(schema.AllMetricCategories))
	for i, cat := range schema.AllMetricCategories {
		order[cat] = i
	}

	all := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool {
		if order[all[i].Category] != order[all[j].Category] {
			return order[all[i].Category] < order[all[j].Category]
		}
		return all[i].Name < all[j].Name
	})
	return all
}
