package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"user not found", ErrUserNotFound, http.StatusNotFound},
		{"wrapped user not found", fmt.Errorf("lookup: %w", ErrUserNotFound), http.StatusNotFound},
		{"missing username", ErrMissingUsername, http.StatusBadRequest},
		{"rate limited", &GraphQLError{Message: "API rate limit exceeded for 1.2.3.4"}, http.StatusTooManyRequests},
		{"graphql error", &GraphQLError{Message: "something was off"}, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(errors.New("403 API rate limit exceeded")))
	assert.True(t, IsRateLimited(&GraphQLError{Message: "RATE LIMIT hit"}))
	assert.False(t, IsRateLimited(errors.New("connection refused")))
	assert.False(t, IsRateLimited(nil))
}

func TestNewExcludedRepositories(t *testing.T) {
	set := NewExcludedRepositories("secret-repo, old-stuff,,  spaced  ")

	assert.True(t, set.Contains("secret-repo"))
	assert.True(t, set.Contains("old-stuff"))
	assert.True(t, set.Contains("spaced"))
	assert.False(t, set.Contains(""))
	assert.False(t, set.Contains("webapp"))
}

func TestExcludedRepositoriesEmptyParam(t *testing.T) {
	set := NewExcludedRepositories("")
	assert.False(t, set.Contains("anything"))
	assert.Len(t, set, 0)
}
