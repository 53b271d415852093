package services

import (
	"context"
	"testing"
	"time"

	"github.com/RaviPatel94/Gitstats/internal/models"
	"github.com/stretchr/testify/assert"
)

func fixedNow() time.Time {
	return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func TestFallbackStrategyIsDeterministic(t *testing.T) {
	strategy := NewFallbackStrategy(10)
	strategy.now = fixedNow

	snap := &models.UserSnapshot{
		Login:             "octocat",
		CreatedAt:         time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC),
		TotalRepositories: 3,
		Repositories: []models.RepositorySnapshot{
			{Name: "a"}, {Name: "b"}, {Name: "c"},
		},
	}

	first, err := strategy.Estimate(context.Background(), snap, models.Credentials{})
	assert.NoError(t, err)
	second, err := strategy.Estimate(context.Background(), snap, models.Credentials{})
	assert.NoError(t, err)

	// 3 repos * 4 years * 10 commits/repo/year
	assert.Equal(t, 120, first.Count)
	assert.Equal(t, first, second)
	assert.Equal(t, "fallback-estimate-3repos-4years", first.Method)
}

func TestFallbackStrategyNeverFails(t *testing.T) {
	strategy := NewFallbackStrategy(10)
	strategy.now = fixedNow

	testCases := []struct {
		name string
		snap *models.UserSnapshot
	}{
		{name: "No repositories", snap: &models.UserSnapshot{CreatedAt: fixedNow().AddDate(-2, 0, 0)}},
		{name: "Account created this year", snap: &models.UserSnapshot{
			CreatedAt:         fixedNow(),
			TotalRepositories: 1,
			Repositories:      []models.RepositorySnapshot{{Name: "a"}},
		}},
		{name: "Account created in the future", snap: &models.UserSnapshot{
			CreatedAt:         fixedNow().AddDate(1, 0, 0),
			TotalRepositories: 1,
			Repositories:      []models.RepositorySnapshot{{Name: "a"}},
		}},
		{name: "Negative repository count", snap: &models.UserSnapshot{
			CreatedAt:         fixedNow().AddDate(-2, 0, 0),
			TotalRepositories: -1,
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			estimate, err := strategy.Estimate(context.Background(), tc.snap, models.Credentials{})
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, estimate.Count, 0)
			assert.NotEmpty(t, estimate.Method)
		})
	}
}

func TestFallbackStrategyBrandNewAccountUsesOneYearMinimum(t *testing.T) {
	strategy := NewFallbackStrategy(8)
	strategy.now = fixedNow

	snap := &models.UserSnapshot{
		CreatedAt:         fixedNow(),
		TotalRepositories: 2,
		Repositories:      []models.RepositorySnapshot{{Name: "a"}, {Name: "b"}},
	}

	estimate, err := strategy.Estimate(context.Background(), snap, models.Credentials{})
	assert.NoError(t, err)
	assert.Equal(t, 16, estimate.Count)
}

func TestFallbackStrategyUsesTotalRepositoryCount(t *testing.T) {
	strategy := NewFallbackStrategy(10)
	strategy.now = fixedNow

	// 250 repositories total, only the first 100 nodes in the list.
	snap := &models.UserSnapshot{
		CreatedAt:         time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		TotalRepositories: 250,
		Repositories:      make([]models.RepositorySnapshot, 100),
	}

	estimate, err := strategy.Estimate(context.Background(), snap, models.Credentials{})
	assert.NoError(t, err)

	// 250 repos * 2 years * 10 commits/repo/year
	assert.Equal(t, 5000, estimate.Count)
	assert.Equal(t, "fallback-estimate-250repos-2years", estimate.Method)
}
