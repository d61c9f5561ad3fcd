package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/benchcoach/lineup-service/internal/types"
)

// ErrCacheMiss is returned when no entry exists for the requested key.
var ErrCacheMiss = errors.New("lineup result not found in cache")

// LineupCacheService caches generation results in Redis, keyed by a hash of
// the request. The cache is an optional accelerator; a nil *LineupCacheService
// is valid and disables caching at the call sites.
type LineupCacheService struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewLineupCacheService creates a new lineup cache service
func NewLineupCacheService(client *redis.Client, logger *logrus.Logger) *LineupCacheService {
	return &LineupCacheService{
		client: client,
		logger: logger,
	}
}

// SetLineupResult stores a generation result in cache
func (c *LineupCacheService) SetLineupResult(ctx context.Context, key string, result *types.GenerateLineupsResponse, expiration time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal lineup result: %w", err)
	}

	fullKey := fmt.Sprintf("lineups:%s", key)
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set lineup result in cache: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":     fullKey,
		"expiration":    expiration,
		"lineups_count": len(result.Lineups),
	}).Debug("Cached lineup result")

	return nil
}

// GetLineupResult retrieves a generation result from cache
func (c *LineupCacheService) GetLineupResult(ctx context.Context, key string) (*types.GenerateLineupsResponse, error) {
	fullKey := fmt.Sprintf("lineups:%s", key)
	data, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get lineup result from cache: %w", err)
	}

	var result types.GenerateLineupsResponse
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lineup result: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":     fullKey,
		"lineups_count": len(result.Lineups),
	}).Debug("Retrieved lineup result from cache")

	return &result, nil
}

// DeleteLineupResult removes a generation result from cache
func (c *LineupCacheService) DeleteLineupResult(ctx context.Context, key string) error {
	fullKey := fmt.Sprintf("lineups:%s", key)
	if err := c.client.Del(ctx, fullKey).Err(); err != nil {
		return fmt.Errorf("failed to delete lineup result from cache: %w", err)
	}

	c.logger.WithField("cache_key", fullKey).Debug("Deleted lineup result from cache")
	return nil
}

// FlushLineupCache clears all cached generation results
func (c *LineupCacheService) FlushLineupCache(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, "lineups:*").Result()
	if err != nil {
		return fmt.Errorf("failed to get lineup cache keys: %w", err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete lineup cache keys: %w", err)
		}
	}

	c.logger.WithField("deleted_keys", len(keys)).Info("Flushed lineup cache")
	return nil
}

// GetStatus returns cache statistics
func (c *LineupCacheService) GetStatus(ctx context.Context) map[string]interface{} {
	dbSize := c.client.DBSize(ctx)

	status := map[string]interface{}{
		"service":   "lineup-cache",
		"timestamp": time.Now(),
		"connected": true,
	}

	if dbSize.Err() == nil {
		status["db_size"] = dbSize.Val()
	}

	lineupKeys, err := c.client.Keys(ctx, "lineups:*").Result()
	if err == nil {
		status["lineup_keys"] = len(lineupKeys)
	}

	return status
}
