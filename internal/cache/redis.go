package cache

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
	parseRedisURL = redis.ParseURL
)

// InitRedis connects to the response cache. An empty url disables the cache
// and returns a nil client; a failed connection is logged and also disables
// it, since the dashboard works without a cache.
func InitRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		return nil
	}

	opts := &redis.Options{Addr: url}
	if strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://") {
		parsed, err := parseRedisURL(url)
		if err != nil {
			zap.L().Warn("invalid REDIS_URL, cache disabled", zap.Error(err))
			return nil
		}
		opts = parsed
	}

	client := newRedisClient(opts)
	if err := pingRedis(ctx, client); err != nil {
		zap.L().Warn("redis unreachable, cache disabled", zap.String("addr", opts.Addr), zap.Error(err))
		_ = client.Close()
		return nil
	}
	zap.L().Info("connected to redis", zap.String("addr", opts.Addr))
	return client
}
