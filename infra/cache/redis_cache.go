package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/paymethods/pkg/config"
	"github.com/amirasaad/paymethods/pkg/provider/exchange"
	"github.com/redis/go-redis/v9"
)

// RedisRateCache implements exchange.RateCache using Redis.
type RedisRateCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisRateCache connects to the Redis instance in cfg.URL and verifies it
// answers a PING.
func NewRedisRateCache(
	ctx context.Context,
	cfg *config.Redis,
	cacheCfg *config.ExchangeRateCache,
	logger *slog.Logger,
) (*RedisRateCache, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout

	c := NewRedisRateCacheWithOptions(opt, cacheCfg.Prefix, cacheCfg.TTL, logger)
	if err := c.client.Ping(ctx).Err(); err != nil {
		_ = c.client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return c, nil
}

// NewRedisRateCacheWithOptions creates a RedisRateCache from redis.Options
// without checking connectivity.
func NewRedisRateCacheWithOptions(
	opt *redis.Options,
	prefix string,
	ttl time.Duration,
	logger *slog.Logger,
) *RedisRateCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRateCache{
		client: redis.NewClient(opt),
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisRateCache) key(from, to string) string {
	return r.prefix + from + ":" + to
}

// GetRate returns the cached rate or (nil, nil) on a miss.
func (r *RedisRateCache) GetRate(ctx context.Context, from, to string) (*exchange.RateInfo, error) {
	key := r.key(from, to)
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", key)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", key, "error", err)
		return nil, err
	}
	var rate exchange.RateInfo
	if err := json.Unmarshal(val, &rate); err != nil {
		r.logger.Error("Redis cache unmarshal error", "key", key, "error", err)
		return nil, err
	}
	r.logger.Debug("Redis cache hit", "key", key, "rate", rate.Rate)
	return &rate, nil
}

// StoreRate stores rate under its pair with the configured TTL.
func (r *RedisRateCache) StoreRate(ctx context.Context, rate *exchange.RateInfo) error {
	if rate == nil {
		return nil
	}
	key := r.key(rate.FromCurrency, rate.ToCurrency)
	data, err := json.Marshal(rate)
	if err != nil {
		r.logger.Error("Redis cache marshal error", "key", key, "error", err)
		return err
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", key, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "key", key, "rate", rate.Rate, "ttl", r.ttl)
	return nil
}

// Close releases the underlying connection pool.
func (r *RedisRateCache) Close() error {
	return r.client.Close()
}

var _ exchange.RateCache = (*RedisRateCache)(nil)
