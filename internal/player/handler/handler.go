// Package handler provides HTTP handlers for player endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/internal/apierror"
	playerModel "github.com/festy23/fantasy_roster/internal/player/model"
	"github.com/festy23/fantasy_roster/internal/player/service"
)

// Handler handles HTTP requests for player endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new player handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// UpsertPlayers handles POST /players/upsert request.
// @Summary Import catalog players
// @Tags Players
// @Accept json
// @Produce json
// @Param request body playerModel.UpsertPlayersRequest true "Request"
// @Success 200 {object} playerModel.UpsertPlayersResponse
// @Failure 400 {object} apierror.ErrorResponse "Bad request (unknown status, identity or type)"
// @Router /players/upsert [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpsertPlayers(c *gin.Context) {
	var req playerModel.UpsertPlayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.UpsertPlayers(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, "error upserting players", "count", len(req.Players))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPlayer handles GET /players/get request.
// @Summary Get a player, optionally with league eligibility
// @Tags Players
// @Produce json
// @Param player_id query string true "Player ID"
// @Param league_id query string false "League ID"
// @Success 200 {object} playerModel.PlayerResponse
// @Failure 404 {object} apierror.ErrorResponse "Player or league not found"
// @Router /players/get [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetPlayer(c *gin.Context) {
	playerID := c.Query("player_id")
	if playerID == "" {
		apierror.InvalidRequest(c, "player_id parameter is required")
		return
	}
	leagueID := c.Query("league_id")

	resp, err := h.service.GetPlayer(c.Request.Context(), playerID, leagueID)
	if err != nil {
		apierror.Write(c, h.logger, err, "error getting player", "player_id", playerID, "league_id", leagueID)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpsertSchedule handles POST /players/schedule request.
// @Summary Import game start times
// @Tags Players
// @Accept json
// @Produce json
// @Param request body playerModel.UpsertScheduleRequest true "Request"
// @Success 200 {object} playerModel.UpsertScheduleResponse
// @Failure 400 {object} apierror.ErrorResponse "Bad request"
// @Router /players/schedule [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpsertSchedule(c *gin.Context) {
	var req playerModel.UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.UpsertSchedule(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, "error upserting schedule", "count", len(req.Games))
		return
	}

	c.JSON(http.StatusOK, resp)
}
