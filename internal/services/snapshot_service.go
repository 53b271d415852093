package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RaviPatel94/Gitstats/internal/gateway"
	"github.com/RaviPatel94/Gitstats/internal/models"
	"github.com/RaviPatel94/Gitstats/pkg/logger"
)

// maxErrorMessageLength caps GraphQL error messages surfaced to callers.
const maxErrorMessageLength = 90

type SnapshotService struct {
	gql        *gateway.GraphQLClient
	maxRetries int
	retryDelay time.Duration
}

func NewSnapshotService(gql *gateway.GraphQLClient, maxRetries int, retryDelay time.Duration) *SnapshotService {
	return &SnapshotService{
		gql:        gql,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// snapshotQuery is the single combined query issued once per request.
// The %s slot receives the privacy filter for unauthenticated requests.
const snapshotQuery = `query userSnapshot($login: String!) {
  user(login: $login) {
    id
    name
    login
    createdAt
    contributionsCollection {
      totalCommitContributions
    }
    pullRequests(first: 1) {
      totalCount
    }
    openIssues: issues(states: OPEN) {
      totalCount
    }
    closedIssues: issues(states: CLOSED) {
      totalCount
    }
    repositories(first: 100, ownerAffiliations: [OWNER, COLLABORATOR, ORGANIZATION_MEMBER], orderBy: {field: UPDATED_AT, direction: DESC}%s) {
      totalCount
      nodes {
        name
        isPrivate
        isFork
        isArchived
        stargazers {
          totalCount
        }
        languages(first: 10, orderBy: {field: SIZE, direction: DESC}) {
          edges {
            size
            node {
              color
              name
            }
          }
        }
      }
    }
  }
}`

type snapshotUser struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	Login                   string    `json:"login"`
	CreatedAt               time.Time `json:"createdAt"`
	ContributionsCollection struct {
		TotalCommitContributions int `json:"totalCommitContributions"`
	} `json:"contributionsCollection"`
	PullRequests struct {
		TotalCount int `json:"totalCount"`
	} `json:"pullRequests"`
	OpenIssues struct {
		TotalCount int `json:"totalCount"`
	} `json:"openIssues"`
	ClosedIssues struct {
		TotalCount int `json:"totalCount"`
	} `json:"closedIssues"`
	Repositories struct {
		TotalCount int `json:"totalCount"`
		Nodes      []struct {
			Name       string `json:"name"`
			IsPrivate  bool   `json:"isPrivate"`
			IsFork     bool   `json:"isFork"`
			IsArchived bool   `json:"isArchived"`
			Stargazers struct {
				TotalCount int `json:"totalCount"`
			} `json:"stargazers"`
			Languages struct {
				Edges []struct {
					Size int `json:"size"`
					Node struct {
						Color string `json:"color"`
						Name  string `json:"name"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"languages"`
		} `json:"nodes"`
	} `json:"repositories"`
}

// Fetch issues the combined snapshot query for one username. When the
// credentials are unauthenticated a privacy filter restricts the
// repository selection to public repos; with a user token the filter is
// omitted so private repos visible to the token are included.
func (s *SnapshotService) Fetch(ctx context.Context, username string, creds models.Credentials) (*models.UserSnapshot, error) {
	privacyFilter := ", privacy: PUBLIC"
	if creds.Authenticated {
		privacyFilter = ""
	}
	query := fmt.Sprintf(snapshotQuery, privacyFilter)
	variables := map[string]interface{}{"login": username}
	headers := map[string]string{"Authorization": "Bearer " + creds.Token}

	resp, err := gateway.WithRetry(ctx, s.maxRetries, s.retryDelay, func(ctx context.Context) (*gateway.GraphQLResponse, error) {
		return s.gql.Do(ctx, query, variables, headers)
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot query failed: %w", err)
	}

	if len(resp.Errors) > 0 {
		first := resp.Errors[0]
		if first.Type == "NOT_FOUND" {
			return nil, models.ErrUserNotFound
		}
		logger.WithField("username", username).Warnf("snapshot query returned %d GraphQL errors", len(resp.Errors))
		return nil, &models.GraphQLError{Message: truncateMessage(first.Message, maxErrorMessageLength)}
	}

	var data struct {
		User *snapshotUser `json:"user"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot response: %w", err)
	}
	if data.User == nil {
		return nil, models.ErrUserNotFound
	}

	return buildSnapshot(data.User), nil
}

// buildSnapshot converts the raw query result into the request-scoped aggregate
func buildSnapshot(user *snapshotUser) *models.UserSnapshot {
	snap := &models.UserSnapshot{
		ID:                user.ID,
		Login:             user.Login,
		Name:              user.Name,
		CreatedAt:         user.CreatedAt,
		PullRequests:      user.PullRequests.TotalCount,
		OpenIssues:        user.OpenIssues.TotalCount,
		ClosedIssues:      user.ClosedIssues.TotalCount,
		Contributions:     user.ContributionsCollection.TotalCommitContributions,
		TotalRepositories: user.Repositories.TotalCount,
		Repositories:      make([]models.RepositorySnapshot, 0, len(user.Repositories.Nodes)),
	}

	for _, node := range user.Repositories.Nodes {
		repo := models.RepositorySnapshot{
			Name:       node.Name,
			IsPrivate:  node.IsPrivate,
			IsFork:     node.IsFork,
			IsArchived: node.IsArchived,
			Stars:      node.Stargazers.TotalCount,
			Languages:  make([]models.RepositoryLanguage, 0, len(node.Languages.Edges)),
		}
		for _, edge := range node.Languages.Edges {
			repo.Languages = append(repo.Languages, models.RepositoryLanguage{
				Name:  edge.Node.Name,
				Color: edge.Node.Color,
				Size:  edge.Size,
			})
		}
		snap.Repositories = append(snap.Repositories, repo)
	}

	return snap
}

// truncateMessage caps an error message at max runes
func truncateMessage(message string, max int) string {
	runes := []rune(message)
	if len(runes) <= max {
		return message
	}
	return string(runes[:max])
}
