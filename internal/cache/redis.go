package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/skyjourney/config"
	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores flight search results as JSON under "cache:flights:<key>".
type RedisCache struct {
	client     redis.Cmdable
	flightsTTL time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisCache(client redis.Cmdable, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     client,
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context, key string) ([]domain.Flight, bool, error) {
	data, err := c.client.Get(ctx, flightsKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, false, err
	}
	return flights, true, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, key string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(key), payload, c.flightsTTL).Err()
}

func flightsKey(key string) string {
	return "cache:flights:" + key
}
