// Package router provides league module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/league/handler"
	leagueModel "github.com/festy23/fantasy_roster/internal/league/model"
	"github.com/festy23/fantasy_roster/internal/league/repository"
	"github.com/festy23/fantasy_roster/internal/league/service"
)

// RegisterRoutes registers league module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, settings leagueModel.Settings, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, settings, logger)
	h := handler.New(svc, logger)

	r.POST("/league/add", h.AddLeague)
	r.GET("/league/get", h.GetLeague)
}
