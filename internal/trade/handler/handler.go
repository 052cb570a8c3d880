// Package handler provides HTTP handlers for trade endpoints.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/internal/apierror"
	tradeModel "github.com/festy23/fantasy_roster/internal/trade/model"
	"github.com/festy23/fantasy_roster/internal/trade/service"
)

// Handler handles HTTP requests for trade endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new trade handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Propose handles POST /trade/propose request.
// A proposal that breaches roster limits is answered with 409 and the per-side result.
// @Summary Propose a trade
// @Tags Trades
// @Accept json
// @Produce json
// @Param request body tradeModel.ProposeTradeRequest true "Request"
// @Success 201 {object} tradeModel.ProposeTradeResponse
// @Failure 400 {object} apierror.ErrorResponse "Empty side, self trade or duplicate player"
// @Failure 404 {object} apierror.ErrorResponse "League or player not found"
// @Failure 409 {object} tradeModel.ProposeTradeResponse "Limit violation on either side"
// @Router /trade/propose [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Propose(c *gin.Context) {
	var req tradeModel.ProposeTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Propose(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, "error proposing trade",
			"league_id", req.LeagueID,
			"initiator_manager_id", req.InitiatorManagerID,
		)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusConflict, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Accept handles POST /trade/accept request.
// @Summary Accept a trade and execute it
// @Tags Trades
// @Accept json
// @Produce json
// @Param request body tradeModel.TradeActionRequest true "Request"
// @Success 200 {object} map[string]tradeModel.TradeResponse
// @Failure 400 {object} apierror.ErrorResponse "Not the recipient or trade already resolved"
// @Failure 404 {object} apierror.ErrorResponse "Trade not found"
// @Failure 409 {object} apierror.ErrorResponse "Trade no longer legal"
// @Router /trade/accept [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Accept(c *gin.Context) {
	h.act(c, "error accepting trade", h.service.Accept)
}

// Reject handles POST /trade/reject request.
// @Summary Reject a trade
// @Tags Trades
// @Accept json
// @Produce json
// @Param request body tradeModel.TradeActionRequest true "Request"
// @Success 200 {object} map[string]tradeModel.TradeResponse
// @Failure 400 {object} apierror.ErrorResponse "Not the recipient or trade already resolved"
// @Failure 404 {object} apierror.ErrorResponse "Trade not found"
// @Router /trade/reject [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Reject(c *gin.Context) {
	h.act(c, "error rejecting trade", h.service.Reject)
}

// Cancel handles POST /trade/cancel request.
// @Summary Cancel a trade
// @Tags Trades
// @Accept json
// @Produce json
// @Param request body tradeModel.TradeActionRequest true "Request"
// @Success 200 {object} map[string]tradeModel.TradeResponse
// @Failure 400 {object} apierror.ErrorResponse "Not the initiator or trade already resolved"
// @Failure 404 {object} apierror.ErrorResponse "Trade not found"
// @Router /trade/cancel [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Cancel(c *gin.Context) {
	h.act(c, "error cancelling trade", h.service.Cancel)
}

func (h *Handler) act(
	c *gin.Context,
	msg string,
	action func(ctx context.Context, req *tradeModel.TradeActionRequest) (*tradeModel.TradeResponse, error),
) {
	var req tradeModel.TradeActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.InvalidRequest(c, "invalid request body")
		return
	}

	trade, err := action(c.Request.Context(), &req)
	if err != nil {
		apierror.Write(c, h.logger, err, msg, "trade_id", req.TradeID, "manager_id", req.ManagerID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trade": trade})
}

// Get handles GET /trade/get request.
// @Summary Get a trade
// @Tags Trades
// @Produce json
// @Param trade_id query string true "Trade ID"
// @Success 200 {object} map[string]tradeModel.TradeResponse
// @Failure 404 {object} apierror.ErrorResponse "Trade not found"
// @Router /trade/get [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Get(c *gin.Context) {
	tradeID := c.Query("trade_id")
	if tradeID == "" {
		apierror.InvalidRequest(c, "trade_id parameter is required")
		return
	}

	trade, err := h.service.Get(c.Request.Context(), tradeID)
	if err != nil {
		apierror.Write(c, h.logger, err, "error getting trade", "trade_id", tradeID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trade": trade})
}

// List handles GET /trade/list request.
// @Summary List a manager's trades
// @Tags Trades
// @Produce json
// @Param league_id query string true "League ID"
// @Param manager_id query string true "Manager ID"
// @Param status query string false "Trade status"
// @Success 200 {object} map[string][]tradeModel.TradeResponse
// @Failure 400 {object} apierror.ErrorResponse "Bad request"
// @Router /trade/list [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) List(c *gin.Context) {
	leagueID := c.Query("league_id")
	managerID := c.Query("manager_id")
	if leagueID == "" || managerID == "" {
		apierror.InvalidRequest(c, "league_id and manager_id parameters are required")
		return
	}

	trades, err := h.service.List(c.Request.Context(), leagueID, managerID, c.Query("status"))
	if err != nil {
		apierror.Write(c, h.logger, err, "error listing trades", "league_id", leagueID, "manager_id", managerID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trades": trades})
}
