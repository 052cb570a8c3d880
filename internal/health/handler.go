// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/database/database"
)

// Pinger is an optional dependency checked alongside the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

// Ping implements Pinger.
func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Handler handles health check requests.
type Handler struct {
	db     *gorm.DB
	deps   map[string]Pinger
	logger *zap.SugaredLogger
}

// New creates a new health handler instance. deps maps a dependency name to its pinger.
func New(db *gorm.DB, logger *zap.SugaredLogger, deps map[string]Pinger) *Handler {
	return &Handler{
		db:     db,
		deps:   deps,
		logger: logger,
	}
}

// Response represents health check response.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp := Response{Status: "ok", Checks: map[string]string{"database": "ok"}}

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "dependency", "database", "error", err)
		resp.Status = "unhealthy"
		resp.Checks["database"] = "unavailable"
	}

	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.logger.Warnw("health check failed", "dependency", name, "error", err)
			resp.Status = "unhealthy"
			resp.Checks[name] = "unavailable"
			continue
		}
		resp.Checks[name] = "ok"
	}

	if resp.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
