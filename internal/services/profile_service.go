package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RaviPatel94/Gitstats/internal/models"
	"github.com/google/go-github/v57/github"
)

type ProfileService struct {
	client *github.Client
}

func NewProfileService(client *github.Client) *ProfileService {
	return &ProfileService{client: client}
}

// Fetch retrieves the basic REST profile for a username
func (s *ProfileService) Fetch(ctx context.Context, username string) (*github.User, error) {
	user, resp, err := s.client.Users.Get(ctx, username)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	return user, nil
}
