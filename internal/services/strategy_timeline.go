package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/RaviPatel94/Gitstats/internal/gateway"
	"github.com/RaviPatel94/Gitstats/internal/models"
)

// TimelineStrategy sums totalCommitContributions over every calendar
// year from account creation to now, using one combined query that
// aliases all years. The contribution graph under-counts commits the
// account has no graph credit for (repo creation commits, old history,
// PR and issue linked commits), so a correction term of
// bonus + repositoryCount + pullRequestCount + issueCount is added on
// top of a positive sum.
type TimelineStrategy struct {
	gql   *gateway.GraphQLClient
	bonus int
	now   func() time.Time
}

func NewTimelineStrategy(gql *gateway.GraphQLClient, bonus int) *TimelineStrategy {
	return &TimelineStrategy{gql: gql, bonus: bonus, now: time.Now}
}

func (s *TimelineStrategy) Name() string {
	return "contribution-timeline"
}

type yearContributions struct {
	TotalCommitContributions     int `json:"totalCommitContributions"`
	RestrictedContributionsCount int `json:"restrictedContributionsCount"`
}

func (s *TimelineStrategy) Estimate(ctx context.Context, snap *models.UserSnapshot, creds models.Credentials) (*models.CommitEstimate, error) {
	now := s.now().UTC()
	firstYear := snap.CreatedAt.UTC().Year()
	lastYear := now.Year()
	if firstYear > lastYear {
		firstYear = lastYear
	}

	query := buildTimelineQuery(firstYear, lastYear, now, creds.Authenticated)
	headers := map[string]string{"Authorization": "Bearer " + creds.Token}

	resp, err := s.gql.Do(ctx, query, map[string]interface{}{"login": snap.Login}, headers)
	if err != nil {
		return nil, fmt.Errorf("timeline query failed: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, &models.GraphQLError{Message: resp.Errors[0].Message}
	}

	var data struct {
		User map[string]yearContributions `json:"user"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse timeline response: %w", err)
	}
	if data.User == nil {
		return nil, models.ErrUserNotFound
	}

	total := 0
	for _, year := range data.User {
		total += clampNonNegative(year.TotalCommitContributions)
		if creds.Authenticated {
			total += clampNonNegative(year.RestrictedContributionsCount)
		}
	}

	if total <= 0 {
		// Inconclusive: hand over to the next strategy.
		return &models.CommitEstimate{Count: 0, Method: s.Name()}, nil
	}

	yearsScanned := lastYear - firstYear + 1
	correction := s.bonus + clampNonNegative(snap.TotalRepositories) + clampNonNegative(snap.PullRequests) + clampNonNegative(snap.TotalIssues())
	tag := fmt.Sprintf("contribution-timeline-%s-%dyears+%dinitial", creds.Visibility(), yearsScanned, correction)

	return &models.CommitEstimate{Count: total + correction, Method: tag}, nil
}

// buildTimelineQuery aliases one contributionsCollection selection per
// calendar year. The final year's window ends at now instead of Dec 31.
func buildTimelineQuery(firstYear, lastYear int, now time.Time, authenticated bool) string {
	fields := "totalCommitContributions"
	if authenticated {
		fields += "\n      restrictedContributionsCount"
	}

	var sb strings.Builder
	sb.WriteString("query contributionTimeline($login: String!) {\n  user(login: $login) {\n")
	for year := firstYear; year <= lastYear; year++ {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
		if year == lastYear {
			to = now
		}
		fmt.Fprintf(&sb, "    y%d: contributionsCollection(from: %q, to: %q) {\n      %s\n    }\n",
			year, from.Format(time.RFC3339), to.Format(time.RFC3339), fields)
	}
	sb.WriteString("  }\n}")
	return sb.String()
}
