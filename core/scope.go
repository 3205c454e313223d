package core

import "github.com/jackc/pgx/v5"

// Scope is the tagged selector every metric takes: either a repository
// group or a single repository. Construct it with GroupScope or
// RepoScope; the zero value is a group scope with id 0, which matches
// nothing in the warehouse.
type Scope struct {
	groupID int64
	repoID  int64
	repo    bool
}

// GroupScope selects all repositories in a repository group.
func GroupScope(groupID int64) Scope {
	return Scope{groupID: groupID}
}

// RepoScope selects a single repository.
func RepoScope(repoID int64) Scope {
	return Scope{repoID: repoID, repo: true}
}

// IsRepo reports whether the scope targets a single repository.
func (s Scope) IsRepo() bool {
	return s.repo
}

// GroupID returns the repository group id for group scopes.
func (s Scope) GroupID() int64 {
	return s.groupID
}

// RepoID returns the repository id for repo scopes.
func (s Scope) RepoID() int64 {
	return s.repoID
}

// bind adds the scope's identifier to a named-argument map. Only the
// identifier the selected query template references is added.
func (s Scope) bind(args pgx.NamedArgs) {
	if s.repo {
		args["repo_id"] = s.repoID
	} else {
		args["repo_group_id"] = s.groupID
	}
}
