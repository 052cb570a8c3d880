// Package router provides waiver module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	leagueRepository "github.com/festy23/fantasy_roster/internal/league/repository"
	"github.com/festy23/fantasy_roster/internal/txn"
	"github.com/festy23/fantasy_roster/internal/waiver/handler"
	"github.com/festy23/fantasy_roster/internal/waiver/repository"
	"github.com/festy23/fantasy_roster/internal/waiver/service"
)

// RegisterRoutes registers waiver module routes.
func RegisterRoutes(r *gin.Engine, rt *txn.Runtime, logger *zap.SugaredLogger) {
	repo := repository.New(rt.DB, rt.Clock, logger)
	svc := service.New(repo, leagueRepository.New(rt.DB, logger), rt, logger)
	h := handler.New(svc, logger)

	r.POST("/waiver/submit", h.Submit)
	r.POST("/waiver/cancel", h.Cancel)
	r.POST("/waiver/reorder", h.Reorder)
	r.GET("/waiver/list", h.List)
}
