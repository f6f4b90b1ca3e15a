// Package cache holds the Redis-backed follow-stats cache. Stats are
// analytics-adjacent reads, so every cache failure degrades to the store
// rather than surfacing an error.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fundspace/backend/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const followStatsKeyPrefix = "followstats:"

// FollowStatsCache caches per-profile follower/following counts with a TTL.
type FollowStatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewFollowStatsCache creates a FollowStatsCache over rdb
func NewFollowStatsCache(rdb *redis.Client, ttl time.Duration) *FollowStatsCache {
	return &FollowStatsCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached stats for userID, or nil on a miss.
func (c *FollowStatsCache) Get(ctx context.Context, userID uuid.UUID) (*models.FollowStats, error) {
	raw, err := c.rdb.Get(ctx, followStatsKeyPrefix+userID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats models.FollowStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Set stores stats for userID.
func (c *FollowStatsCache) Set(ctx context.Context, userID uuid.UUID, stats models.FollowStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, followStatsKeyPrefix+userID.String(), raw, c.ttl).Err()
}

// Invalidate drops the cached stats for the given profiles. Called after a
// follow edge is inserted or deleted for both sides of the edge.
func (c *FollowStatsCache) Invalidate(ctx context.Context, userIDs ...uuid.UUID) error {
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = followStatsKeyPrefix + id.String()
	}
	return c.rdb.Del(ctx, keys...).Err()
}
