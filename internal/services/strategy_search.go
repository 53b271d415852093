package services

import (
	"context"
	"fmt"

	"github.com/RaviPatel94/Gitstats/internal/gateway"
	"github.com/RaviPatel94/Gitstats/internal/models"
	"github.com/RaviPatel94/Gitstats/pkg/logger"
	"github.com/google/go-github/v57/github"
)

// CommitSearchStrategy asks the commit search API for the user's commits
// under several author/committer query variants and keeps the maximum
// total, since search results differ depending on commit metadata. The
// search API is rate-limited more aggressively than GraphQL, so variants
// are paced.
type CommitSearchStrategy struct {
	client *github.Client
	pacer  *gateway.Pacer
}

func NewCommitSearchStrategy(client *github.Client, pacer *gateway.Pacer) *CommitSearchStrategy {
	return &CommitSearchStrategy{client: client, pacer: pacer}
}

func (s *CommitSearchStrategy) Name() string {
	return "commit-search"
}

func (s *CommitSearchStrategy) Estimate(ctx context.Context, snap *models.UserSnapshot, creds models.Credentials) (*models.CommitEstimate, error) {
	variants := []string{
		fmt.Sprintf("author:%s", snap.Login),
		fmt.Sprintf("committer:%s", snap.Login),
		fmt.Sprintf("author:%s OR committer:%s", snap.Login, snap.Login),
	}

	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	max := 0
	answered := 0
	var lastErr error

	for _, variant := range variants {
		if err := s.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		result, _, err := s.client.Search.Commits(ctx, variant, opts)
		if err != nil {
			lastErr = err
			logger.WithField("query", variant).WithError(err).Debugf("commit search variant failed")
			continue
		}
		answered++
		if total := clampNonNegative(result.GetTotal()); total > max {
			max = total
		}
	}

	if answered == 0 {
		return nil, fmt.Errorf("all commit search variants failed: %w", lastErr)
	}
	if max <= 0 {
		return &models.CommitEstimate{Count: 0, Method: s.Name()}, nil
	}

	tag := fmt.Sprintf("commit-search-%s-%dvariants", creds.Visibility(), answered)
	return &models.CommitEstimate{Count: max, Method: tag}, nil
}
