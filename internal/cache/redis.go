package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Cache stores computed recommendation lists. The engine itself is pure,
// so a cached list is exactly what a recomputation would return until
// the user's interactions change; entries are keyed by user, algorithm,
// and limit, and cleared per user on new interactions.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func buildKey(userID int64, algorithm string, limit int) string {
	return fmt.Sprintf("rec:user:%d:%s:limit:%d", userID, algorithm, limit)
}

// Get returns the cached list and whether it was present.
func (c *Cache) Get(ctx context.Context, userID int64, algorithm string, limit int) ([]domain.Property, bool, error) {
	key := buildKey(userID, algorithm, limit)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var props []domain.Property
	if err := json.Unmarshal([]byte(val), &props); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached recommendations %s: %w", key, err)
	}
	return props, true, nil
}

func (c *Cache) Set(ctx context.Context, userID int64, algorithm string, limit int, props []domain.Property) error {
	key := buildKey(userID, algorithm, limit)
	val, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// ClearUserCache drops every cached list for a user; called whenever the
// user produces a new interaction.
func (c *Cache) ClearUserCache(ctx context.Context, userID int64) error {
	pattern := fmt.Sprintf("rec:user:%d:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
