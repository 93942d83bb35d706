package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aidlink/aidlink/internal/shared/logger"
)

type HealthHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	logger logger.Interface
}

// NewHealthHandler checks db and, when non-nil, redis.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, log logger.Interface) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, logger: log}
}

type healthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Dependencies: map[string]string{}}

	if err := h.pingDB(ctx); err != nil {
		h.logger.Warnw("health check: database unavailable", "error", err)
		resp.Status = "degraded"
		resp.Dependencies["database"] = "down"
	} else {
		resp.Dependencies["database"] = "up"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.logger.Warnw("health check: redis unavailable", "error", err)
			resp.Status = "degraded"
			resp.Dependencies["redis"] = "down"
		} else {
			resp.Dependencies["redis"] = "up"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
