package models

import "strings"

// ExcludedRepositories is the set of repository names the caller wants
// filtered out of star and language aggregation. Names that match no
// repository are ignored.
type ExcludedRepositories map[string]struct{}

// NewExcludedRepositories parses the comma-separated exclude_repo query
// parameter into a set
func NewExcludedRepositories(param string) ExcludedRepositories {
	set := make(ExcludedRepositories)
	for _, name := range strings.Split(param, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the repository name is excluded
func (e ExcludedRepositories) Contains(name string) bool {
	_, ok := e[name]
	return ok
}
