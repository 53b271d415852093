package models

import "time"

// UserSnapshot is the root aggregate for one username at one point in
// time. It is built once per request from the combined GraphQL snapshot
// query and never shared across requests.
type UserSnapshot struct {
	ID           string               `json:"id"`
	Login        string               `json:"login"`
	Name         string               `json:"name"`
	CreatedAt    time.Time            `json:"created_at"`
	PullRequests int                  `json:"pull_requests"`
	OpenIssues   int                  `json:"open_issues"`
	ClosedIssues int                  `json:"closed_issues"`
	// Contributions is totalCommitContributions for the default
	// contributions collection window (roughly the last year).
	Contributions int `json:"contributions"`
	// TotalRepositories is the full repository count reported by the
	// query; Repositories holds at most the first 100 nodes.
	TotalRepositories int                  `json:"total_repositories"`
	Repositories      []RepositorySnapshot `json:"repositories"`
}

// TotalIssues returns open plus closed issue counts
func (s *UserSnapshot) TotalIssues() int {
	return s.OpenIssues + s.ClosedIssues
}

// AccountAgeYears returns the account age in whole years, never less than 1
func (s *UserSnapshot) AccountAgeYears(now time.Time) int {
	years := now.Year() - s.CreatedAt.Year()
	if years < 1 {
		return 1
	}
	return years
}
