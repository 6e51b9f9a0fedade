package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bookworm-search/internal/models"
)

// RedisResultStore stores search results in Redis.
type RedisResultStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisResultStore initializes a Redis-backed ResultStore.
func NewRedisResultStore(addr, prefix string, ttl time.Duration) *RedisResultStore {
	return NewRedisResultStoreWithClient(redis.NewClient(&redis.Options{Addr: addr}), prefix, ttl)
}

// NewRedisResultStoreWithClient wraps an existing client.
func NewRedisResultStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisResultStore {
	return &RedisResultStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Ping checks the Redis connection.
func (s *RedisResultStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisResultStore) Close() error {
	return s.client.Close()
}

// SetResult writes the search result to Redis.
func (s *RedisResultStore) SetResult(ctx context.Context, key string, resp models.SearchResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, payload, s.ttl).Err()
}

// GetResult reads a search result from Redis.
func (s *RedisResultStore) GetResult(ctx context.Context, key string) (models.SearchResponse, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.SearchResponse{}, false, nil
		}
		return models.SearchResponse{}, false, err
	}

	var resp models.SearchResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return models.SearchResponse{}, false, err
	}
	return resp, true, nil
}
