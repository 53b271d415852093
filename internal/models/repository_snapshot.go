package models

// RepositoryLanguage is one language edge of a repository with its byte
// size as reported by GitHub.
type RepositoryLanguage struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// RepositorySnapshot holds the per-repository fields the aggregation
// pipeline needs. Immutable for the lifetime of the request.
type RepositorySnapshot struct {
	Name       string               `json:"name"`
	IsPrivate  bool                 `json:"is_private"`
	IsFork     bool                 `json:"is_fork"`
	IsArchived bool                 `json:"is_archived"`
	Stars      int                  `json:"stars"`
	Languages  []RepositoryLanguage `json:"languages"`
}
