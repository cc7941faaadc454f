package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

// CacheRepository abstracts persistence for cached backend reads. Entries are grouped by scope.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Put(ctx context.Context, scope, key string, value interface{}, ttl time.Duration) error
	Purge(ctx context.Context, scope string) error
}

// CacheKey addresses one cached read inside its scope.
type CacheKey struct {
	Scope string
	Name  string
}

func (k CacheKey) String() string {
	return k.Scope + ":" + k.Name
}

// CacheService is a read-through cache for per-user backend reads. A failing cache never fails
// the read; it only costs a backend round trip.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

func userScope(userID string) string {
	return "portal:user:" + userID
}

// UserKey builds the cache key of one user-scoped read. Without a user id the key is empty
// and the read bypasses the cache.
func UserKey(userID string, parts ...string) CacheKey {
	if userID == "" {
		return CacheKey{}
	}
	return CacheKey{Scope: userScope(userID), Name: strings.Join(parts, ":")}
}

// Get attempts to retrieve a cached entry. It returns true when the cache was hit.
func (s *CacheService) Get(ctx context.Context, key CacheKey, dest interface{}) (bool, error) {
	if !s.Enabled() || key.Scope == "" {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key.String(), dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("cache get failed", zap.Stringer("key", key), zap.Error(err))
		return false, err
	}
	return true, nil
}

// Set stores the value in cache.
func (s *CacheService) Set(ctx context.Context, key CacheKey, value interface{}, ttl time.Duration) error {
	if !s.Enabled() || key.Scope == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Put(ctx, key.Scope, key.String(), value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.Stringer("key", key), zap.Error(err))
	}
	return err
}

// Remember returns the cached value under key or, on a miss, the value produced by load, which
// is then stored. The boolean reports a cache hit.
func Remember[T any](ctx context.Context, s *CacheService, key CacheKey, load func(context.Context) (T, error)) (T, bool, error) {
	var cached T
	if hit, _ := s.Get(ctx, key, &cached); hit {
		return cached, true, nil
	}
	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}
	_ = s.Set(ctx, key, value, 0)
	return value, false, nil
}

// InvalidateUser drops every cached read of a user.
func (s *CacheService) InvalidateUser(ctx context.Context, userID string) error {
	if userID == "" || !s.Enabled() {
		return nil
	}
	scope := userScope(userID)
	if err := s.repo.Purge(ctx, scope); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("scope", scope), zap.Error(err))
		return err
	}
	return nil
}
