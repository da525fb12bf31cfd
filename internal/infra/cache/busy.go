package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/vo"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const (
	providerCalendar  = "calendar"
	providerScheduler = "scheduler"
	scanBatch         = 100
)

type busyRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BusyCache stores provider busy ranges per salon. Every failure is logged and treated as a miss.
type BusyCache struct {
	rdb    goredis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewBusyCache(rdb goredis.UniversalClient, ttl time.Duration, logger *slog.Logger) *BusyCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BusyCache{rdb: rdb, ttl: ttl, logger: logger}
}

func busyKey(provider string, salonID uuid.UUID, ref string, from, to time.Time) string {
	return fmt.Sprintf("busy:%s:%s:%s:%d:%d", provider, salonID, ref, from.Unix(), to.Unix())
}

func salonPattern(provider string, salonID uuid.UUID) string {
	return fmt.Sprintf("busy:%s:%s:*", provider, salonID)
}

func (c *BusyCache) get(ctx context.Context, key string) ([]vo.DateRange, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Warn("busy cache read failed", "key", key, "error", err.Error())
		}
		return nil, false
	}
	var stored []busyRange
	if err := json.Unmarshal(raw, &stored); err != nil {
		c.logger.Warn("busy cache entry is corrupt", "key", key, "error", err.Error())
		return nil, false
	}
	out := make([]vo.DateRange, 0, len(stored))
	for _, b := range stored {
		r, err := vo.NewDateRange(b.Start.UTC(), b.End.UTC())
		if err != nil {
			return nil, false
		}
		out = append(out, r)
	}
	return out, true
}

func (c *BusyCache) set(ctx context.Context, key string, ranges []vo.DateRange) {
	stored := make([]busyRange, 0, len(ranges))
	for _, r := range ranges {
		stored = append(stored, busyRange{Start: r.Start(), End: r.End()})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("busy cache write failed", "key", key, "error", err.Error())
	}
}

// Invalidate drops every cached range of the salon for the provider.
func (c *BusyCache) Invalidate(ctx context.Context, provider string, salonID uuid.UUID) {
	iter := c.rdb.Scan(ctx, 0, salonPattern(provider, salonID), scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("busy cache scan failed", "salon_id", salonID, "provider", provider, "error", err.Error())
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("busy cache invalidation failed", "salon_id", salonID, "provider", provider, "error", err.Error())
	}
}

func (c *BusyCache) lookup(
	ctx context.Context,
	key string,
	load func(context.Context) ([]vo.DateRange, error),
) ([]vo.DateRange, error) {
	if ranges, ok := c.get(ctx, key); ok {
		return ranges, nil
	}
	ranges, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, ranges)
	return ranges, nil
}
