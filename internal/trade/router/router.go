// Package router provides trade module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	leagueRepository "github.com/festy23/fantasy_roster/internal/league/repository"
	"github.com/festy23/fantasy_roster/internal/trade/handler"
	"github.com/festy23/fantasy_roster/internal/trade/repository"
	"github.com/festy23/fantasy_roster/internal/trade/service"
	"github.com/festy23/fantasy_roster/internal/txn"
)

// RegisterRoutes registers trade module routes.
func RegisterRoutes(r *gin.Engine, rt *txn.Runtime, logger *zap.SugaredLogger) {
	repo := repository.New(rt.DB, rt.Clock, logger)
	svc := service.New(repo, leagueRepository.New(rt.DB, logger), rt, logger)
	h := handler.New(svc, logger)

	r.POST("/trade/propose", h.Propose)
	r.POST("/trade/accept", h.Accept)
	r.POST("/trade/reject", h.Reject)
	r.POST("/trade/cancel", h.Cancel)
	r.GET("/trade/get", h.Get)
	r.GET("/trade/list", h.List)
}
