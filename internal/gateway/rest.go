package gateway

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// NewRESTClient builds a go-github client whose transport waits out
// primary rate limits and, when a token is present, injects it via
// oauth2. apiURL overrides the default API base, mainly for tests.
func NewRESTClient(token, apiURL string) (*github.Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	httpClient := &http.Client{Transport: rateLimitWaiter}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient.Transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		}
	}

	client := github.NewClient(httpClient)
	if apiURL != "" && apiURL != "https://api.github.com/" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		base, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
		}
		client.BaseURL = base
	}

	return client, nil
}
