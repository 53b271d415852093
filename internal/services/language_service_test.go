package services

import (
	"testing"

	"github.com/RaviPatel94/Gitstats/internal/models"
	"github.com/stretchr/testify/assert"
)

func sampleRepos() []models.RepositorySnapshot {
	return []models.RepositorySnapshot{
		{
			Name:  "dotfiles",
			Stars: 3,
			Languages: []models.RepositoryLanguage{
				{Name: "Shell", Size: 1000},
			},
		},
		{
			Name:  "webapp",
			Stars: 42,
			Languages: []models.RepositoryLanguage{
				{Name: "TypeScript", Size: 50000},
				{Name: "CSS", Size: 8000},
			},
		},
		{
			Name:  "api-server",
			Stars: 10,
			Languages: []models.RepositoryLanguage{
				{Name: "Go", Size: 30000},
				{Name: "TypeScript", Size: 2000},
			},
		},
		{
			Name:  "secret-repo",
			Stars: 100,
			Languages: []models.RepositoryLanguage{
				{Name: "Rust", Size: 5000},
			},
		},
	}
}

func TestTopLanguages(t *testing.T) {
	service := NewLanguageService()

	top := service.TopLanguages(sampleRepos(), models.ExcludedRepositories{})

	// TypeScript 52000, Go 30000, CSS 8000, Rust 5000, Shell 1000
	assert.Equal(t, []string{"#TypeScript", "#Go", "#CSS", "#Rust", "#Shell"}, top)
}

func TestTopLanguagesTruncatesToFive(t *testing.T) {
	service := NewLanguageService()

	repos := []models.RepositorySnapshot{{
		Name: "polyglot",
		Languages: []models.RepositoryLanguage{
			{Name: "Go", Size: 700},
			{Name: "Rust", Size: 600},
			{Name: "Python", Size: 500},
			{Name: "Ruby", Size: 400},
			{Name: "Java", Size: 300},
			{Name: "Perl", Size: 200},
			{Name: "Lua", Size: 100},
		},
	}}

	top := service.TopLanguages(repos, models.ExcludedRepositories{})

	assert.Len(t, top, 5)
	assert.NotContains(t, top, "#Perl")
	assert.NotContains(t, top, "#Lua")
}

func TestTopLanguagesStableTieBreak(t *testing.T) {
	service := NewLanguageService()

	repos := []models.RepositorySnapshot{
		{Name: "a", Languages: []models.RepositoryLanguage{{Name: "Elixir", Size: 500}}},
		{Name: "b", Languages: []models.RepositoryLanguage{{Name: "Haskell", Size: 500}}},
	}

	top := service.TopLanguages(repos, models.ExcludedRepositories{})

	// Equal byte totals keep first-seen order.
	assert.Equal(t, []string{"#Elixir", "#Haskell"}, top)
}

func TestTopLanguagesRespectsExclusions(t *testing.T) {
	service := NewLanguageService()
	excluded := models.NewExcludedRepositories("secret-repo")

	top := service.TopLanguages(sampleRepos(), excluded)

	assert.NotContains(t, top, "#Rust")
}

func TestTopLanguagesEmptyRepos(t *testing.T) {
	service := NewLanguageService()

	top := service.TopLanguages(nil, models.ExcludedRepositories{})

	assert.Empty(t, top)
}

func TestTotalStars(t *testing.T) {
	service := NewLanguageService()

	testCases := []struct {
		name     string
		excluded models.ExcludedRepositories
		expected int
	}{
		{name: "No exclusions", excluded: models.ExcludedRepositories{}, expected: 155},
		{name: "Exclude one repository", excluded: models.NewExcludedRepositories("secret-repo"), expected: 55},
		{name: "Exclude multiple repositories", excluded: models.NewExcludedRepositories("secret-repo,webapp"), expected: 13},
		{name: "Exclude nonexistent repository", excluded: models.NewExcludedRepositories("does-not-exist"), expected: 155},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			total := service.TotalStars(sampleRepos(), tc.excluded)
			assert.Equal(t, tc.expected, total)
		})
	}
}

func TestExclusionFilterIsIdempotent(t *testing.T) {
	service := NewLanguageService()
	excluded := models.NewExcludedRepositories("secret-repo")

	once := service.TotalStars(sampleRepos(), excluded)
	twice := service.TotalStars(sampleRepos(), excluded)

	assert.Equal(t, once, twice)

	topOnce := service.TopLanguages(sampleRepos(), excluded)
	topTwice := service.TopLanguages(sampleRepos(), excluded)
	assert.Equal(t, topOnce, topTwice)
}
