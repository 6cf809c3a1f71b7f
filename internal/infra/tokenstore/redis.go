package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"foodgram/internal/resilience/circuitbreaker"
	"foodgram/internal/resilience/retry"
)

// revokedKeyPrefix namespaces revocation markers in a shared Redis.
const revokedKeyPrefix = "trl:jti:"

var isRevokedDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "foodgram_token_revocation_check_duration_seconds",
	Help:    "Latency of token revocation lookups",
	Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
})

// RedisStore is a Redis-backed revocation list.
type RedisStore struct {
	client *redis.Client
	cb     *circuitbreaker.Breaker
}

// NewRedisClient parses url, connects and pings with backoff.
// The caller owns the returned client.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	err = retry.Do(ctx, retry.Redis, func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewRedisStore wraps client. Lookups go through a circuit breaker so a
// dead Redis fails fast instead of stalling every authenticated request.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		cb:     circuitbreaker.New(circuitbreaker.RedisConfig()),
	}
}

// Revoke marks jti as revoked for ttl. Non-positive ttl is a no-op
// because the token has already expired.
func (s *RedisStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("Revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti is on the list. A missing key means not revoked.
func (s *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	start := time.Now()
	defer func() { isRevokedDuration.Observe(time.Since(start).Seconds()) }()

	if jti == "" {
		return false, nil
	}
	res, err := s.cb.Execute(func() (interface{}, error) {
		err := s.client.Get(ctx, revokedKeyPrefix+jti).Err()
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("IsRevoked: %w", err)
	}
	return res.(bool), nil
}

// Ping reports whether Redis answers; used by the readiness probe.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
