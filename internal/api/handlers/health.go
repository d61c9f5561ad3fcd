package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/benchcoach/lineup-service/internal/types"
	"github.com/benchcoach/lineup-service/internal/websocket"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	redis  *redis.Client // nil when Redis is not configured
	wsHub  *websocket.Hub
	logger *logrus.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(
	redis *redis.Client,
	wsHub *websocket.Hub,
	logger *logrus.Logger,
) *HealthHandler {
	return &HealthHandler{
		redis:  redis,
		wsHub:  wsHub,
		logger: logger,
	}
}

// GetHealth returns the basic health status
func (h *HealthHandler) GetHealth(c *gin.Context) {
	response := types.HealthStatus{
		Status:    "ok",
		Service:   "lineup-service",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	// Redis is optional; the engine itself has no dependencies.
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			response.Status = "degraded"
			response.Checks["redis"] = "failed: " + err.Error()
		} else {
			response.Checks["redis"] = "ok"
		}
	} else {
		response.Checks["redis"] = "not_configured"
	}

	c.JSON(http.StatusOK, response)
}

// GetReady returns readiness for traffic
func (h *HealthHandler) GetReady(c *gin.Context) {
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			h.logger.WithError(err).Warn("Readiness check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"ready": false,
				"error": err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ready":          true,
		"ws_connections": h.wsHub.GetConnectionCount(),
	})
}
