package models

import (
	"errors"
	"net/http"
	"strings"
)

// ErrUserNotFound is returned when the REST profile fetch 404s or the
// GraphQL snapshot reports a NOT_FOUND error type.
var ErrUserNotFound = errors.New("user not found")

// ErrMissingUsername is returned when the request carries an empty username.
var ErrMissingUsername = errors.New("username is required")

// GraphQLError is any GraphQL-level error payload other than NOT_FOUND.
type GraphQLError struct {
	Message string
}

func (e *GraphQLError) Error() string {
	return "GraphQL error: " + e.Message
}

// IsRateLimited classifies errors whose message indicates GitHub rate
// limiting. The limit can surface from REST, GraphQL or search with
// different concrete types, so classification goes by message.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "rate limit")
}

// HTTPStatus maps the error taxonomy to response status codes
func HTTPStatus(err error) int {
	var gqlErr *GraphQLError
	switch {
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMissingUsername):
		return http.StatusBadRequest
	case IsRateLimited(err):
		return http.StatusTooManyRequests
	case errors.As(err, &gqlErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
