package bootstrap

import (
	"context"
	"log/slog"

	"salon-scheduler/internal/infra/cache"
	"salon-scheduler/internal/pkg/config"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRedis,
		NewBusyCache,
	),
)

// NewRedis yields a nil client when REDIS_ADDR is empty.
func NewRedis(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*goredis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	rdb, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rdb == nil {
		logger.Info("busy cache disabled, REDIS_ADDR is empty")
		return nil, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return rdb, nil
}

// NewBusyCache is nil without a redis client, so the provider ports stay undecorated.
func NewBusyCache(rdb *goredis.Client, cfg config.Config, logger *slog.Logger) *cache.BusyCache {
	if rdb == nil {
		return nil
	}
	return cache.NewBusyCache(rdb, cfg.Redis.BusyCacheTTL, logger)
}
