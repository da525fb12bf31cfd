package cache

import (
	"context"
	"fmt"

	"salon-scheduler/internal/pkg/config"

	goredis "github.com/redis/go-redis/v9"
)

// NewRedis returns (nil, nil) when no address is configured; callers then skip caching.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}
