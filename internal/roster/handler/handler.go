// Package handler provides HTTP handlers for roster endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/internal/apierror"
	rosterModel "github.com/festy23/fantasy_roster/internal/roster/model"
	"github.com/festy23/fantasy_roster/internal/roster/service"
)

// Handler handles HTTP requests for roster endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new roster handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CheckAdd handles POST /roster/checkAdd request.
// @Summary Check whether an add is legal without committing it
// @Tags Roster
// @Accept json
// @Produce json
// @Param request body rosterModel.CheckAddRequest true "Request"
// @Success 200 {object} rosterModel.CheckAddResponse
// @Failure 400 {object} apierror.ErrorResponse "Player already rostered or on waivers"
// @Failure 404 {object} apierror.ErrorResponse "League or player not found"
// @Failure 409 {object} apierror.ErrorResponse "Drop player is locked by a trade"
// @Router /roster/checkAdd [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CheckAdd(c *gin.Context) {
	var req rosterModel.CheckAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.CheckAdd(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, "error checking add", "league_id", req.LeagueID, "player_id", req.PlayerID)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Add handles POST /roster/add request.
// @Summary Add a free agent, optionally dropping a rostered player
// @Tags Roster
// @Accept json
// @Produce json
// @Param request body rosterModel.AddRequest true "Request"
// @Success 200 {object} rosterModel.TransactionResponse
// @Failure 400 {object} apierror.ErrorResponse "Bad request"
// @Failure 404 {object} apierror.ErrorResponse "League or player not found"
// @Failure 409 {object} apierror.ErrorResponse "Limit violation, locked player or stale roster"
// @Router /roster/add [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Add(c *gin.Context) {
	var req rosterModel.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Add(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, "error adding player",
			"league_id", req.LeagueID,
			"manager_id", req.ManagerID,
			"player_id", req.PlayerID,
		)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Drop handles POST /roster/drop request.
// @Summary Drop a rostered player to waivers
// @Tags Roster
// @Accept json
// @Produce json
// @Param request body rosterModel.DropRequest true "Request"
// @Success 200 {object} rosterModel.TransactionResponse
// @Failure 404 {object} apierror.ErrorResponse "Player is not on the roster"
// @Failure 409 {object} apierror.ErrorResponse "Player is locked by a trade"
// @Router /roster/drop [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Drop(c *gin.Context) {
	var req rosterModel.DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Drop(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, "error dropping player",
			"league_id", req.LeagueID,
			"manager_id", req.ManagerID,
			"player_id", req.PlayerID,
		)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Move handles POST /roster/move request.
// @Summary Move a player to another slot
// @Tags Roster
// @Accept json
// @Produce json
// @Param request body rosterModel.MoveRequest true "Request"
// @Success 200 {object} rosterModel.TransactionResponse
// @Failure 400 {object} apierror.ErrorResponse "Bad request"
// @Failure 404 {object} apierror.ErrorResponse "Player is not on the roster"
// @Failure 409 {object} apierror.ErrorResponse "Ineligible slot, limit violation or lineup lock"
// @Router /roster/move [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Move(c *gin.Context) {
	var req rosterModel.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Move(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, "error moving player",
			"league_id", req.LeagueID,
			"manager_id", req.ManagerID,
			"player_id", req.PlayerID,
			"target_slot", req.TargetSlot,
		)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetRoster handles GET /roster/get request.
// @Summary Get a manager's roster
// @Tags Roster
// @Produce json
// @Param league_id query string true "League ID"
// @Param manager_id query string true "Manager ID"
// @Success 200 {object} rosterModel.RosterResponse
// @Failure 404 {object} apierror.ErrorResponse "League not found"
// @Router /roster/get [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetRoster(c *gin.Context) {
	leagueID := c.Query("league_id")
	managerID := c.Query("manager_id")
	if leagueID == "" || managerID == "" {
		apierror.InvalidRequest(c, "league_id and manager_id parameters are required")
		return
	}

	resp, err := h.service.GetRoster(c.Request.Context(), leagueID, managerID)
	if err != nil {
		apierror.Write(c, h.logger, err, "error getting roster", "league_id", leagueID, "manager_id", managerID)
		return
	}

	c.JSON(http.StatusOK, resp)
}
