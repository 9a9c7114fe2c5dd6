package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"myStarCompanion/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const globalGenerationKey = "optimize:gen"

// OptimizationCache stores optimizer results per user and stat pair.
//
// Results are keyed by a version made of a global generation (bumped when the
// relic catalog changes) and a per-user generation (bumped when the user's
// relics change). Invalidation only increments a generation; results written
// under an older version are never read again and expire with their TTL.
type OptimizationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOptimizationCache(client *redis.Client, ttl time.Duration) *OptimizationCache {
	return &OptimizationCache{
		client: client,
		ttl:    ttl,
	}
}

func userGenerationKey(userID uint) string {
	return fmt.Sprintf("optimize:user:%d:gen", userID)
}

// resultKey length-prefixes both stat names so that no two stat pairs share a key.
func resultKey(userID uint, version, statA, statB string) string {
	return fmt.Sprintf("optimize:user:%d:v%s:%d:%s:%d:%s", userID, version, len(statA), statA, len(statB), statB)
}

// Version returns the current cache version of the user. Read it before
// loading the data a result is computed from, and pass it to Get and Set.
func (c *OptimizationCache) Version(ctx context.Context, userID uint) (string, error) {
	vals, err := c.client.MGet(ctx, globalGenerationKey, userGenerationKey(userID)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read optimization cache version: %w", err)
	}

	gen := [2]string{"0", "0"}
	for i, v := range vals {
		if s, ok := v.(string); ok {
			gen[i] = s
		}
	}

	return gen[0] + "." + gen[1], nil
}

func (c *OptimizationCache) Get(ctx context.Context, userID uint, version, statA, statB string) ([]domain.OptimizedSlot, bool, error) {
	val, err := c.client.Get(ctx, resultKey(userID, version, statA, statB)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get optimization from Redis: %w", err)
	}

	var entries []domain.OptimizedSlot
	if err := json.Unmarshal(val, &entries); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal optimization: %w", err)
	}

	return entries, true, nil
}

func (c *OptimizationCache) Set(ctx context.Context, userID uint, version, statA, statB string, entries []domain.OptimizedSlot) error {
	if entries == nil {
		entries = []domain.OptimizedSlot{}
	}

	jsonData, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal optimization: %w", err)
	}

	if err := c.client.Set(ctx, resultKey(userID, version, statA, statB), jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store optimization in Redis: %w", err)
	}

	return nil
}

// InvalidateUser retires every cached result of the user.
func (c *OptimizationCache) InvalidateUser(ctx context.Context, userID uint) error {
	if err := c.client.Incr(ctx, userGenerationKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate optimizations: %w", err)
	}
	return nil
}

// InvalidateAll retires the cached results of every user.
func (c *OptimizationCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, globalGenerationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate all optimizations: %w", err)
	}
	return nil
}
