// Package handler provides HTTP handlers for league endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/internal/apierror"
	leagueModel "github.com/festy23/fantasy_roster/internal/league/model"
	"github.com/festy23/fantasy_roster/internal/league/service"
)

// Handler handles HTTP requests for league endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new league handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// AddLeague handles POST /league/add request.
// @Summary Create a league from explicit settings or a preset
// @Tags Leagues
// @Accept json
// @Produce json
// @Param request body leagueModel.AddLeagueRequest true "Request"
// @Success 201 {object} map[string]leagueModel.LeagueResponse "Response wrapped in league object"
// @Failure 400 {object} apierror.ErrorResponse "Bad request (INVALID_REQUEST)"
// @Failure 500 {object} apierror.ErrorResponse "Internal server error"
// @Router /league/add [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) AddLeague(c *gin.Context) {
	var req leagueModel.AddLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.AddLeague(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, "error adding league", "league_id", req.LeagueID)
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"league": resp,
	})
}

// GetLeague handles GET /league/get request.
// @Summary Get league settings
// @Tags Leagues
// @Produce json
// @Param league_id query string true "League ID"
// @Success 200 {object} leagueModel.LeagueResponse "League response"
// @Failure 400 {object} apierror.ErrorResponse "Bad request (missing league_id parameter)"
// @Failure 404 {object} apierror.ErrorResponse "League not found"
// @Router /league/get [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetLeague(c *gin.Context) {
	leagueID := c.Query("league_id")
	if leagueID == "" {
		apierror.InvalidRequest(c, "league_id parameter is required")
		return
	}

	resp, err := h.service.GetLeague(c.Request.Context(), leagueID)
	if err != nil {
		apierror.Write(c, h.logger, err, "error getting league", "league_id", leagueID)
		return
	}

	c.JSON(http.StatusOK, resp)
}
