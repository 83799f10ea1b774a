package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CitiesKey is the Redis key holding the cached city filter list
const CitiesKey = "jobboard:filters:cities"

// CityCache is a read-through cache for the city filter list
type CityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCityCache(rdb *redis.Client, ttl time.Duration) *CityCache {
	return &CityCache{rdb: rdb, ttl: ttl}
}

// GetCities returns the cached cities. ok is false on a cache miss.
func (c *CityCache) GetCities(ctx context.Context) ([]string, bool, error) {
	raw, err := c.rdb.Get(ctx, CitiesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cities cache: %w", err)
	}

	var cities []string
	if err := json.Unmarshal(raw, &cities); err != nil {
		return nil, false, fmt.Errorf("failed to decode cities cache: %w", err)
	}
	return cities, true, nil
}

func (c *CityCache) SetCities(ctx context.Context, cities []string) error {
	raw, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("failed to encode cities cache: %w", err)
	}
	if err := c.rdb.Set(ctx, CitiesKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cities cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached list so the next read goes to the store
func (c *CityCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, CitiesKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cities cache: %w", err)
	}
	return nil
}
