package handlers

import (
	"errors"
	"net/http"

	"github.com/RaviPatel94/Gitstats/internal/middleware"
	"github.com/RaviPatel94/Gitstats/internal/models"
	"github.com/RaviPatel94/Gitstats/internal/services"
	"github.com/gin-gonic/gin"
)

type UserStatsHandler struct {
	statsService *services.StatsService
}

func NewUserStatsHandler(statsService *services.StatsService) *UserStatsHandler {
	return &UserStatsHandler{statsService: statsService}
}

// GetUserStats serves GET /githubuser/:username. Repositories named in
// the exclude_repo query parameter are filtered out of star and language
// aggregation.
func (h *UserStatsHandler) GetUserStats(c *gin.Context) {
	username := c.Param("username")
	excluded := models.NewExcludedRepositories(c.Query("exclude_repo"))
	creds := middleware.GetCredentials(c)

	summary, err := h.statsService.GetUserSummary(c.Request.Context(), username, creds, excluded)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// renderError maps the error taxonomy to the JSON error body
func (h *UserStatsHandler) renderError(c *gin.Context, err error) {
	status := models.HTTPStatus(err)
	body := gin.H{"error": errorMessage(err)}

	if status == http.StatusTooManyRequests {
		body["suggestion"] = "Authenticate with your GitHub account to get a higher rate limit"
	}
	if gin.Mode() == gin.DebugMode {
		body["debug"] = err.Error()
	}

	c.JSON(status, body)
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, models.ErrMissingUsername):
		return "Username is required"
	case models.IsRateLimited(err):
		return "GitHub API rate limit exceeded"
	default:
		return err.Error()
	}
}
