// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/internal/apierror"
	"github.com/festy23/fantasy_roster/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetManagerActivity handles GET /statistics/managers request.
// @Summary Get transaction counts per manager
// @Tags Statistics
// @Produce json
// @Param league_id query string true "League ID"
// @Success 200 {object} model.ManagerActivityResponse
// @Failure 500 {object} apierror.ErrorResponse
// @Router /statistics/managers [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetManagerActivity(c *gin.Context) {
	leagueID := c.Query("league_id")
	if leagueID == "" {
		apierror.InvalidRequest(c, "league_id parameter is required")
		return
	}

	resp, err := h.service.GetManagerActivity(c.Request.Context(), leagueID)
	if err != nil {
		apierror.Write(c, h.logger, err, "error getting manager activity", "league_id", leagueID)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTransactionStatistics handles GET /statistics/transactions request.
// @Summary Get transaction statistics for a league
// @Tags Statistics
// @Produce json
// @Param league_id query string true "League ID"
// @Success 200 {object} model.TransactionStatisticsResponse
// @Failure 500 {object} apierror.ErrorResponse
// @Router /statistics/transactions [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTransactionStatistics(c *gin.Context) {
	leagueID := c.Query("league_id")
	if leagueID == "" {
		apierror.InvalidRequest(c, "league_id parameter is required")
		return
	}

	resp, err := h.service.GetTransactionStatistics(c.Request.Context(), leagueID)
	if err != nil {
		apierror.Write(c, h.logger, err, "error getting transaction statistics", "league_id", leagueID)
		return
	}

	c.JSON(http.StatusOK, resp)
}
