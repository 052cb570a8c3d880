// Package handler provides HTTP handlers for waiver endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/internal/apierror"
	waiverModel "github.com/festy23/fantasy_roster/internal/waiver/model"
	"github.com/festy23/fantasy_roster/internal/waiver/service"
)

// Handler handles HTTP requests for waiver endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new waiver handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Submit handles POST /waiver/submit request.
// @Summary Submit a waiver claim
// @Tags Waivers
// @Accept json
// @Produce json
// @Param request body waiverModel.SubmitClaimRequest true "Request"
// @Success 201 {object} map[string]waiverModel.ClaimResponse
// @Failure 400 {object} apierror.ErrorResponse "Player is not on waivers or claim already pending"
// @Failure 404 {object} apierror.ErrorResponse "League not found or drop player not on roster"
// @Router /waiver/submit [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Submit(c *gin.Context) {
	var req waiverModel.SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	claim, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, "error submitting waiver claim",
			"league_id", req.LeagueID,
			"manager_id", req.ManagerID,
			"add_player_id", req.AddPlayerID,
		)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"claim": claim})
}

// Cancel handles POST /waiver/cancel request.
// @Summary Cancel a pending waiver claim
// @Tags Waivers
// @Accept json
// @Produce json
// @Param request body waiverModel.CancelClaimRequest true "Request"
// @Success 200 {object} map[string]waiverModel.ClaimResponse
// @Failure 400 {object} apierror.ErrorResponse "Claim is no longer pending"
// @Failure 404 {object} apierror.ErrorResponse "Claim not found"
// @Router /waiver/cancel [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Cancel(c *gin.Context) {
	var req waiverModel.CancelClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	claim, err := h.service.Cancel(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, "error cancelling waiver claim", "claim_id", req.ClaimID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": claim})
}

// Reorder handles POST /waiver/reorder request.
// @Summary Move a waiver claim one place up or down in its group
// @Tags Waivers
// @Accept json
// @Produce json
// @Param request body waiverModel.ReorderClaimRequest true "Request"
// @Success 200 {object} waiverModel.ListClaimsResponse
// @Failure 400 {object} apierror.ErrorResponse "Claim is already first or last"
// @Failure 404 {object} apierror.ErrorResponse "Claim not found"
// @Router /waiver/reorder [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Reorder(c *gin.Context) {
	var req waiverModel.ReorderClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Reorder(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, "error reordering waiver claim", "claim_id", req.ClaimID, "direction", req.Direction)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List handles GET /waiver/list request.
// @Summary List pending waiver claims in priority order
// @Tags Waivers
// @Produce json
// @Param league_id query string true "League ID"
// @Param manager_id query string true "Manager ID"
// @Param off_waiver_date query string false "Off-waiver date (YYYY-MM-DD)"
// @Success 200 {object} waiverModel.ListClaimsResponse
// @Failure 400 {object} apierror.ErrorResponse "Bad request"
// @Router /waiver/list [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) List(c *gin.Context) {
	leagueID := c.Query("league_id")
	managerID := c.Query("manager_id")
	if leagueID == "" || managerID == "" {
		apierror.InvalidRequest(c, "league_id and manager_id parameters are required")
		return
	}
	date := c.Query("off_waiver_date")

	resp, err := h.service.ListGroup(c.Request.Context(), leagueID, managerID, date)
	if err != nil {
		apierror.Write(c, h.logger, err, "error listing waiver claims", "league_id", leagueID, "manager_id", managerID)
		return
	}

	c.JSON(http.StatusOK, resp)
}
