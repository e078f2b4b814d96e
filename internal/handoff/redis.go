package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps payloads under "handoff:<key>" and reads them with GETDEL.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, h domain.Handoff) (string, error) {
	payload, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("encode handoff: %w", err)
	}
	key := uuid.NewString()
	if err := s.client.Set(ctx, redisKey(key), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store handoff: %w", err)
	}
	return key, nil
}

func (s *RedisStore) Take(ctx context.Context, key string) (*domain.Handoff, error) {
	data, err := s.client.GetDel(ctx, redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load handoff: %w", err)
	}
	var h domain.Handoff
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decode handoff: %w", err)
	}
	return &h, nil
}

func redisKey(key string) string {
	return "handoff:" + key
}

var _ Store = (*RedisStore)(nil)
