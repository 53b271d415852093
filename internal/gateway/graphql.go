// Package gateway provides the outbound GitHub plumbing: the raw GraphQL
// gateway, the retry wrapper, the pacer used to space sequential API
// calls, and authenticated REST client construction.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GraphQLClient posts queries to the GitHub GraphQL endpoint.
type GraphQLClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewGraphQLClient creates a new GraphQL client for the given endpoint
func NewGraphQLClient(endpoint string) *GraphQLClient {
	return &GraphQLClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GraphQLRequest represents a GraphQL request body
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLError represents one entry of the errors payload
type GraphQLError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// GraphQLResponse is the envelope returned for every completed request.
// Errors is populated verbatim from the response body; the gateway never
// acts on it. Checking it is the caller's responsibility.
type GraphQLResponse struct {
	Data       json.RawMessage `json:"data"`
	Errors     []GraphQLError  `json:"errors,omitempty"`
	Status     int             `json:"-"`
	StatusText string          `json:"-"`
}

// Do executes one GraphQL query. Headers are merged over the defaults and
// must include the bearer authorization header. Only transport failures
// return an error; HTTP-level non-2xx responses still produce an envelope
// because GitHub encodes application errors inside the body.
func (c *GraphQLClient) Do(ctx context.Context, query string, variables map[string]interface{}, headers map[string]string) (*GraphQLResponse, error) {
	jsonData, err := json.Marshal(GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "gitstats")
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	gqlResp := &GraphQLResponse{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
	}
	if err := json.Unmarshal(body, gqlResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return gqlResp, nil
}
