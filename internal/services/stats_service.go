package services

import (
	"context"
	"time"

	"github.com/RaviPatel94/Gitstats/internal/models"
	"github.com/RaviPatel94/Gitstats/pkg/logger"
	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// StatsService orchestrates one summary request: the REST profile fetch
// and the GraphQL snapshot fetch run concurrently, both must complete
// before estimation begins, then the commit estimator and the language
// aggregation consume the snapshot.
type StatsService struct {
	profiles  *ProfileService
	snapshots *SnapshotService
	estimator *CommitEstimator
	languages *LanguageService
	now       func() time.Time
}

func NewStatsService(profiles *ProfileService, snapshots *SnapshotService, estimator *CommitEstimator, languages *LanguageService) *StatsService {
	return &StatsService{
		profiles:  profiles,
		snapshots: snapshots,
		estimator: estimator,
		languages: languages,
		now:       time.Now,
	}
}

// GetUserSummary builds the full summary for one username
func (s *StatsService) GetUserSummary(ctx context.Context, username string, creds models.Credentials, excluded models.ExcludedRepositories) (*models.UserSummary, error) {
	if username == "" {
		return nil, models.ErrMissingUsername
	}

	var profile *github.User
	var snap *models.UserSnapshot

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		profile, err = s.profiles.Fetch(egCtx, username)
		return err
	})
	eg.Go(func() error {
		var err error
		snap, err = s.snapshots.Fetch(egCtx, username, creds)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	estimate := s.estimator.Estimate(ctx, snap, creds)
	topLanguages := s.languages.TopLanguages(snap.Repositories, excluded)
	totalStars := s.languages.TotalStars(snap.Repositories, excluded)

	logger.WithFields(logrus.Fields{
		"username":     username,
		"method":       estimate.Method,
		"totalCommits": estimate.Count,
		"repositories": len(snap.Repositories),
	}).Infof("user summary assembled")

	summary := &models.UserSummary{
		Login:        profile.GetLogin(),
		Name:         profile.GetName(),
		AvatarURL:    profile.GetAvatarURL(),
		Bio:          profile.GetBio(),
		Company:      profile.GetCompany(),
		Location:     profile.GetLocation(),
		CreatedAt:    profile.GetCreatedAt().UTC().Format(time.RFC3339),
		PublicRepos:  profile.GetPublicRepos(),
		Followers:    profile.GetFollowers(),
		TotalCommits: estimate.Count,
		TotalStars:   totalStars,
		TotalPRs:     snap.PullRequests,
		TotalIssues:  snap.TotalIssues(),
		TopLanguages: topLanguages,
		Metadata: models.Metadata{
			Authenticated:           creds.Authenticated,
			Timestamp:               s.now().UTC().Format(time.RFC3339),
			CommitCalculationMethod: estimate.Method,
			DataScope:               creds.DataScope(),
		},
	}

	return summary, nil
}
