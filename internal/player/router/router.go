// Package router provides player module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	leagueRepository "github.com/festy23/fantasy_roster/internal/league/repository"
	"github.com/festy23/fantasy_roster/internal/player/handler"
	"github.com/festy23/fantasy_roster/internal/player/repository"
	"github.com/festy23/fantasy_roster/internal/player/service"
)

// RegisterRoutes registers player module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, leagueRepository.New(db, logger), db, logger)
	h := handler.New(svc, logger)

	r.POST("/players/upsert", h.UpsertPlayers)
	r.GET("/players/get", h.GetPlayer)
	r.POST("/players/schedule", h.UpsertSchedule)
}
