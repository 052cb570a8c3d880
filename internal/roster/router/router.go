// Package router provides roster module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	leagueRepository "github.com/festy23/fantasy_roster/internal/league/repository"
	playerRepository "github.com/festy23/fantasy_roster/internal/player/repository"
	"github.com/festy23/fantasy_roster/internal/roster/handler"
	"github.com/festy23/fantasy_roster/internal/roster/repository"
	"github.com/festy23/fantasy_roster/internal/roster/service"
	"github.com/festy23/fantasy_roster/internal/txn"
)

// RegisterRoutes registers roster module routes.
func RegisterRoutes(r *gin.Engine, rt *txn.Runtime, logger *zap.SugaredLogger) {
	repo := repository.New(rt.DB, logger)
	svc := service.New(repo, leagueRepository.New(rt.DB, logger), playerRepository.New(rt.DB, logger), rt, logger)
	h := handler.New(svc, logger)

	r.POST("/roster/checkAdd", h.CheckAdd)
	r.POST("/roster/add", h.Add)
	r.POST("/roster/drop", h.Drop)
	r.POST("/roster/move", h.Move)
	r.GET("/roster/get", h.GetRoster)
}
