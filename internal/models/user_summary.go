package models

// UserSummary is the public response shape served to the profile-card
// renderer. Field names follow the GitHub REST profile for the basic
// fields and camelCase for the aggregated ones.
type UserSummary struct {
	Login        string   `json:"login"`
	Name         string   `json:"name"`
	AvatarURL    string   `json:"avatar_url"`
	Bio          string   `json:"bio"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	CreatedAt    string   `json:"created_at"`
	PublicRepos  int      `json:"public_repos"`
	Followers    int      `json:"followers"`
	TotalCommits int      `json:"totalCommits"`
	TotalStars   int      `json:"totalStars"`
	TotalPRs     int      `json:"totalPRs"`
	TotalIssues  int      `json:"totalIssues"`
	TopLanguages []string `json:"topLanguages"`
	Metadata     Metadata `json:"_metadata"`
}

// Metadata records how the summary was produced.
type Metadata struct {
	Authenticated           bool   `json:"authenticated"`
	Timestamp               string `json:"timestamp"`
	CommitCalculationMethod string `json:"commitCalculationMethod"`
	DataScope               string `json:"dataScope"`
}
