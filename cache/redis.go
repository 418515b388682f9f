package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/mobistore-api/models"
	"github.com/redis/go-redis/v9"
)

const filterOptionsKey = "catalog:filter-options"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisCache) Get(ctx context.Context) (*models.FilterOptions, error) {
	data, err := r.client.Get(ctx, filterOptionsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var opts models.FilterOptions
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("unmarshal filter options failed: %w", err)
	}
	return &opts, nil
}

func (r *RedisCache) Set(ctx context.Context, opts *models.FilterOptions) error {
	data, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("marshal filter options failed: %w", err)
	}
	if err := r.client.Set(ctx, filterOptionsKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, filterOptionsKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
