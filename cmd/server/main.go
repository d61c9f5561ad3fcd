package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/benchcoach/lineup-service/internal/api/handlers"
	"github.com/benchcoach/lineup-service/internal/cache"
	"github.com/benchcoach/lineup-service/internal/config"
	"github.com/benchcoach/lineup-service/internal/websocket"
	"github.com/benchcoach/lineup-service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logger with service context
	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithService("lineup-service").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting Lineup Service")

	// Setup Gin mode
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis when configured; the result cache is optional and
	// the service runs without it.
	var redisClient *redis.Client
	var cacheService *cache.LineupCacheService
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithService("lineup-service").Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithService("lineup-service").Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cacheService = cache.NewLineupCacheService(redisClient, structuredLogger)
	}

	// Initialize WebSocket hub for per-period progress updates
	wsHub := websocket.NewHub(structuredLogger)
	go wsHub.Run()

	// Initialize router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// Initialize handlers
	lineupHandler := handlers.NewLineupHandler(cacheService, wsHub, cfg, structuredLogger)
	healthHandler := handlers.NewHealthHandler(redisClient, wsHub, structuredLogger)

	// Setup API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/lineups/generate", lineupHandler.GenerateLineups)
		apiV1.POST("/lineups/validate", lineupHandler.ValidateLineup)
		apiV1.GET("/lineups/cache-status", lineupHandler.GetCacheStatus)
		apiV1.GET("/sports", lineupHandler.ListSports)
	}

	// WebSocket endpoint for progress updates
	router.GET("/ws/lineup-progress/:team_id", wsHub.HandleWebSocket)

	// Health check endpoints
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.WithService("lineup-service").WithField("port", cfg.Port).Info("Lineup service started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("lineup-service").Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("lineup-service").Info("Shutting down lineup service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("lineup-service").Fatalf("Lineup service forced to shutdown: %v", err)
	}

	logger.WithService("lineup-service").Info("Lineup service exited")
}
