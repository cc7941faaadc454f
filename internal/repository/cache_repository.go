package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

// CacheRepository keeps per-user backend reads in Redis. Every entry is recorded in a set
// owned by its scope so a logout can drop the user's reads without scanning the keyspace.
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository constructs a cache repository.
func NewCacheRepository(client *redis.Client, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: client, logger: logger}
}

func scopeIndex(scope string) string { return scope + ":keys" }

// Get decodes the entry stored under key into dest. A missing entry yields ErrCacheMiss.
func (r *CacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return appErrors.ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A payload from an older layout is treated as absent.
		r.logger.Debug("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return appErrors.ErrCacheMiss
	}
	return nil
}

// Put stores value under key and registers the key with scope.
func (r *CacheRepository) Put(ctx context.Context, scope, key string, value interface{}, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	index := scopeIndex(scope)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, payload, ttl)
		pipe.SAdd(ctx, index, key)
		pipe.Expire(ctx, index, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put %s: %w", key, err)
	}
	return nil
}

// Purge removes every entry registered with scope together with the scope index.
func (r *CacheRepository) Purge(ctx context.Context, scope string) error {
	if r.client == nil {
		return nil
	}
	index := scopeIndex(scope)
	keys, err := r.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("redis members %s: %w", index, err)
	}
	keys = append(keys, index)
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis purge %s: %w", scope, err)
	}
	r.logger.Debug("cache scope purged", zap.String("scope", scope), zap.Int("entries", len(keys)-1))
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *CacheRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
