package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"casavista-listings/pkg/cache"
	"casavista-listings/pkg/config"
	"casavista-listings/pkg/database"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Health godoc
// @Summary Service health
// @Description Report connectivity of the database and cache plus internal endpoint readiness
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	overall := "ok"
	status := http.StatusOK

	dbStatus := "up"
	if err := database.Ping(ctx); err != nil {
		dbStatus = "down"
	}
	cacheStatus := "up"
	if err := cache.Ping(ctx); err != nil {
		cacheStatus = "down"
	}
	if dbStatus != "up" || cacheStatus != "up" {
		overall = "degraded"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":                     overall,
		"database":                   dbStatus,
		"cache":                      cacheStatus,
		"internal_secret_configured": h.cfg.Internal.Secret != "",
		"time":                       time.Now().UTC().Format(time.RFC3339),
	})
}
