package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"visit-routing-service/internal/domain"
)

// RedisTravelTimeCache is a Redis-backed cache for directional travel-time
// lookups. Entries expire so stale traffic estimates age out.
type RedisTravelTimeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTravelTimeCache(client *redis.Client, ttl time.Duration) *RedisTravelTimeCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisTravelTimeCache{client: client, ttl: ttl}
}

func key(origin, destination domain.Coordinates) string {
	return "traveltime:" + origin.Key() + "|" + destination.Key()
}

func (c *RedisTravelTimeCache) Get(ctx context.Context, origin, destination domain.Coordinates) (float64, bool, error) {
	val, err := c.client.Get(ctx, key(origin, destination)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get travel time cache: redis get: %w", err)
	}

	minutes, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("get travel time cache: parse cached value %q: %w", val, err)
	}

	return minutes, true, nil
}

func (c *RedisTravelTimeCache) Put(ctx context.Context, origin, destination domain.Coordinates, minutes float64) error {
	val := strconv.FormatFloat(minutes, 'f', -1, 64)
	if err := c.client.Set(ctx, key(origin, destination), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("put travel time cache: redis set: %w", err)
	}
	return nil
}
