package services

import (
	"burnshop_server/structs"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// CacheService holds the short-lived counters and flags kept in Redis: rate limit windows
// and the logout blacklist. When Redis is disabled every call is a no-op.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	cs := &CacheService{
		logger: logger,
		config: cfg,
	}
	if cfg.Cache.Enabled {
		cs.client = getRedisClient(cfg.Cache)
	}
	return cs
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient(cfg *structs.CacheConfig) *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,

			// Connection pool settings
			PoolSize:        cfg.PoolSize,
			MinIdleConns:    cfg.MinIdleConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			PoolTimeout:     cfg.PoolTimeout,
			ConnMaxIdleTime: cfg.IdleTimeout,

			// Timeouts
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,

			// Retry settings
			MaxRetries:      cfg.MaxRetries,
			MinRetryBackoff: cfg.MinRetryBackoff,
			MaxRetryBackoff: cfg.MaxRetryBackoff,
		})
	})
	return redisClient
}

func (cs *CacheService) Enabled() bool {
	return cs.client != nil
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if cs.client != nil {
		return cs.client.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff and jitter
func (cs *CacheService) withRetry(ctx context.Context, operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == maxRetries || !isRetryableCacheError(err) {
			break
		}

		backoff := min(100*time.Millisecond<<attempt, 2*time.Second)
		wait := backoff/2 + rand.N(backoff/2+1)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("redis operation failed: %w", lastErr)
}

// isRetryableCacheError reports network-level failures; redis.Nil and command errors are final
func isRetryableCacheError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}

	errStr := err.Error()
	for _, retryable := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	} {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}
	return false
}

func blacklistKey(jti uuid.UUID) string {
	return fmt.Sprintf("blacklist:%s", jti)
}

func rateLimitKey(ip, endpoint string) string {
	return fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)
}

// BlacklistToken marks a token's jti as revoked until the token would have expired anyway
func (cs *CacheService) BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error {
	if !cs.Enabled() {
		return nil
	}

	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}

	return cs.withRetry(ctx, func() error {
		return cs.client.Set(ctx, blacklistKey(jti), "true", ttl).Err()
	}, 3)
}

// IsTokenBlacklisted reports whether the jti was revoked by a logout
func (cs *CacheService) IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error) {
	if !cs.Enabled() {
		return false, nil
	}

	var blacklisted bool
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Get(ctx, blacklistKey(jti)).Result()
		if errors.Is(err, redis.Nil) {
			blacklisted = false
			return nil
		}
		if err != nil {
			return err
		}
		blacklisted = val == "true"
		return nil
	}, 3)

	return blacklisted, err
}

// IncrementRateLimit atomically increments a rate limit counter. The window starts at the
// first increment.
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, endpoint string, ttl time.Duration) (int, error) {
	if !cs.Enabled() {
		return 0, nil
	}

	key := rateLimitKey(ip, endpoint)
	var result int64
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Incr(ctx, key).Result()
		if err != nil {
			return err
		}
		result = val

		if val == 1 {
			return cs.client.Expire(ctx, key, ttl).Err()
		}
		return nil
	}, 3)

	return int(result), err
}

// RateLimitReset returns how long until the counter for ip/endpoint expires
func (cs *CacheService) RateLimitReset(ctx context.Context, ip, endpoint string) (time.Duration, error) {
	if !cs.Enabled() {
		return 0, nil
	}
	ttl, err := cs.client.TTL(ctx, rateLimitKey(ip, endpoint)).Result()
	if err != nil {
		return 0, err
	}
	return max(ttl, 0), nil
}

// Ping tests the Redis connection
func (cs *CacheService) Ping(ctx context.Context) error {
	if !cs.Enabled() {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Ping(ctx).Err()
	}, 3)
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	if !cs.Enabled() {
		return map[string]any{"enabled": false}
	}

	stats := cs.client.PoolStats()
	return map[string]any{
		"enabled":     true,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}
