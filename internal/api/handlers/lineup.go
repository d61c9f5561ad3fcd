package handlers

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/benchcoach/lineup-service/internal/analytics"
	"github.com/benchcoach/lineup-service/internal/cache"
	"github.com/benchcoach/lineup-service/internal/config"
	"github.com/benchcoach/lineup-service/internal/generator"
	"github.com/benchcoach/lineup-service/internal/types"
	"github.com/benchcoach/lineup-service/internal/websocket"
)

// LineupHandler handles lineup generation endpoints
type LineupHandler struct {
	cache  *cache.LineupCacheService // nil when Redis is not configured
	wsHub  *websocket.Hub
	config *config.Config
	logger *logrus.Logger
}

// NewLineupHandler creates a new lineup handler
func NewLineupHandler(
	cache *cache.LineupCacheService,
	wsHub *websocket.Hub,
	config *config.Config,
	logger *logrus.Logger,
) *LineupHandler {
	return &LineupHandler{
		cache:  cache,
		wsHub:  wsHub,
		config: config,
		logger: logger,
	}
}

// GenerateLineups handles lineup generation requests
func (h *LineupHandler) GenerateLineups(c *gin.Context) {
	var req types.GenerateLineupsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	gen, err := generator.NewGenerator(req.Sport)
	if err != nil {
		h.respondFactoryError(c, req.Sport, err)
		return
	}

	cacheKey := h.generateCacheKey(req)
	if h.cache != nil {
		if cached, err := h.cache.GetLineupResult(c.Request.Context(), cacheKey); err == nil && cached != nil {
			h.logger.WithField("cache_key", cacheKey).Info("Returning cached lineup result")
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	generationID := uuid.New().String()
	log := h.logger.WithFields(logrus.Fields{
		"generation_id": generationID,
		"sport":         gen.Sport(),
		"team_id":       req.GameInfo.TeamID,
		"players":       len(req.Players),
	})

	progress := func(update types.ProgressUpdate) {
		h.wsHub.BroadcastToTeam(req.GameInfo.TeamID, update)
	}

	startTime := time.Now()
	lineups, err := gen.GenerateWithProgress(req.Players, req.GameInfo, progress)
	if err != nil {
		h.respondGenerationError(c, log, err)
		return
	}

	response := &types.GenerateLineupsResponse{
		GenerationID: generationID,
		Sport:        gen.Sport(),
		Lineups:      lineups,
		Balance:      analytics.BuildBalanceReport(req.Players, lineups),
	}

	if h.cache != nil {
		ttl := time.Duration(h.config.CacheTTLMinutes) * time.Minute
		if err := h.cache.SetLineupResult(c.Request.Context(), cacheKey, response, ttl); err != nil {
			log.WithError(err).Warn("Failed to cache lineup result")
		}
	}

	log.WithFields(logrus.Fields{
		"lineups":     len(lineups),
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Info("Lineup generation completed")

	c.JSON(http.StatusOK, response)
}

// ValidateLineup checks a single lineup against a sport's rules
func (h *LineupHandler) ValidateLineup(c *gin.Context) {
	var req types.ValidateLineupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	cfg, err := generator.SportConfigFor(req.Sport)
	if err != nil {
		h.respondFactoryError(c, req.Sport, err)
		return
	}

	violations := generator.ValidateLineup(cfg, req.Lineup)
	c.JSON(http.StatusOK, types.ValidateLineupResponse{
		Valid:      len(violations) == 0,
		Violations: violations,
	})
}

// ListSports returns the sports with implemented generators
func (h *LineupHandler) ListSports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sports": generator.SupportedSports(),
	})
}

// GetCacheStatus reports result-cache statistics
func (h *LineupHandler) GetCacheStatus(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusOK, gin.H{
			"service":   "lineup-cache",
			"connected": false,
		})
		return
	}
	c.JSON(http.StatusOK, h.cache.GetStatus(c.Request.Context()))
}

func (h *LineupHandler) respondFactoryError(c *gin.Context, sport string, err error) {
	switch {
	case errors.Is(err, generator.ErrNotImplemented):
		c.JSON(http.StatusNotImplemented, types.ErrorResponse{
			Error: err.Error(),
			Code:  "SPORT_NOT_IMPLEMENTED",
		})
	default:
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: err.Error(),
			Code:  "UNKNOWN_SPORT",
			Details: map[string]string{
				"sport": sport,
			},
		})
	}
}

func (h *LineupHandler) respondGenerationError(c *gin.Context, log *logrus.Entry, err error) {
	var vErr *generator.ValidationError
	switch {
	case errors.As(err, &vErr):
		details := make(map[string]string, len(vErr.Problems))
		for i, problem := range vErr.Problems {
			details[fmt.Sprintf("problem_%d", i+1)] = problem
		}
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   err.Error(),
			Code:    "VALIDATION_FAILED",
			Details: details,
		})
	case errors.Is(err, generator.ErrInfeasibleLineup):
		log.WithError(err).Warn("Lineup generation infeasible")
		c.JSON(http.StatusUnprocessableEntity, types.ErrorResponse{
			Error: err.Error(),
			Code:  "INFEASIBLE_LINEUP",
		})
	default:
		log.WithError(err).Error("Lineup generation failed")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "Lineup generation failed",
			Code:  "GENERATION_ERROR",
			Details: map[string]string{
				"error": err.Error(),
			},
		})
	}
}

// generateCacheKey hashes the full request so identical rosters and game
// metadata hit the same cache entry.
func (h *LineupHandler) generateCacheKey(req types.GenerateLineupsRequest) string {
	data, err := json.Marshal(req)
	if err != nil {
		return uuid.New().String() // fall through to a miss
	}
	return fmt.Sprintf("%x", md5.Sum(data))
}
