package services

import (
	"context"
	"fmt"
	"time"

	"github.com/RaviPatel94/Gitstats/internal/models"
	"github.com/montanaflynn/stats"
)

// FallbackStrategy is the deterministic arithmetic estimate accepted when
// every data-driven strategy fails or comes up empty:
// repositoryCount * accountAgeYears * commitsPerRepoYear. It carries no
// accuracy guarantee; it exists so the pipeline never fails outright.
type FallbackStrategy struct {
	commitsPerRepoYear int
	now                func() time.Time
}

func NewFallbackStrategy(commitsPerRepoYear int) *FallbackStrategy {
	return &FallbackStrategy{commitsPerRepoYear: commitsPerRepoYear, now: time.Now}
}

func (s *FallbackStrategy) Name() string {
	return "fallback-estimate"
}

func (s *FallbackStrategy) Estimate(_ context.Context, snap *models.UserSnapshot, _ models.Credentials) (*models.CommitEstimate, error) {
	repoCount := clampNonNegative(snap.TotalRepositories)
	years := snap.AccountAgeYears(s.now())

	estimate := float64(repoCount * years * s.commitsPerRepoYear)
	rounded, err := stats.Round(estimate, 0)
	if err != nil {
		rounded = 0
	}

	count := clampNonNegative(int(rounded))
	tag := fmt.Sprintf("fallback-estimate-%drepos-%dyears", repoCount, years)
	return &models.CommitEstimate{Count: count, Method: tag}, nil
}
