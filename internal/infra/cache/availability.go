package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/metrics"
)

// AvailabilityCache stores computed slots per professional, date and
// duration. Every write to a professional's day bumps a version counter,
// so stale entries are never read back; they simply expire.
//
// All Redis failures are logged and reported as a miss.
type AvailabilityCache struct {
	rdb     *redis.Client
	ttl     time.Duration
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

func NewAvailabilityCache(
	rdb *redis.Client,
	ttl time.Duration,
	logger *logging.Logger,
	m *metrics.BookingMetrics,
) *AvailabilityCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl, logger: logger, metrics: m}
}

func versionKey(professionalID uint, date string) string {
	return fmt.Sprintf("avail:ver:%d:%s", professionalID, date)
}

func slotsKey(professionalID uint, date string, duration int, version int64) string {
	return fmt.Sprintf("avail:%d:%s:%d:v%d", professionalID, date, duration, version)
}

// Get returns the cached slots and the version they were read under. The
// version must be handed back to Set so a result computed before a
// concurrent invalidation is stored under the old, unreachable key.
func (c *AvailabilityCache) Get(
	ctx context.Context,
	professionalID uint,
	date string,
	duration int,
) ([]domain.TimeSlot, int64, bool) {
	if c == nil || c.rdb == nil {
		return nil, 0, false
	}

	version, err := c.version(ctx, professionalID, date)
	if err != nil {
		c.fail("get", err)
		return nil, 0, false
	}

	raw, err := c.rdb.Get(ctx, slotsKey(professionalID, date, duration, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.ObserveCache("get", "miss")
		return nil, version, false
	}
	if err != nil {
		c.fail("get", err)
		return nil, version, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.fail("get", err)
		return nil, version, false
	}

	c.metrics.ObserveCache("get", "hit")
	return slots, version, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	professionalID uint,
	date string,
	duration int,
	version int64,
	slots []domain.TimeSlot,
) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		c.fail("set", err)
		return
	}

	if err := c.rdb.Set(ctx, slotsKey(professionalID, date, duration, version), raw, c.ttl).Err(); err != nil {
		c.fail("set", err)
		return
	}
	c.metrics.ObserveCache("set", "ok")
}

// Invalidate bumps the day's version.
func (c *AvailabilityCache) Invalidate(ctx context.Context, professionalID uint, date string) {
	if c == nil || c.rdb == nil {
		return
	}

	key := versionKey(professionalID, date)
	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	// versions outlive every entry written under them
	pipe.Expire(ctx, key, 48*time.Hour+c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.fail("invalidate", err)
		return
	}
	c.metrics.ObserveCache("invalidate", "ok")
}

// InvalidateDays bumps several days in one round trip. Used when the
// working hours change and every upcoming day may differ.
func (c *AvailabilityCache) InvalidateDays(ctx context.Context, professionalID uint, dates []string) {
	if c == nil || c.rdb == nil || len(dates) == 0 {
		return
	}

	pipe := c.rdb.TxPipeline()
	for _, date := range dates {
		key := versionKey(professionalID, date)
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 48*time.Hour+c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.fail("invalidate", err)
		return
	}
	c.metrics.ObserveCache("invalidate", "ok")
}

func (c *AvailabilityCache) version(ctx context.Context, professionalID uint, date string) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey(professionalID, date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *AvailabilityCache) fail(op string, err error) {
	c.logger.Warn("availability cache error", "op", op, "error", err)
	c.metrics.ObserveCache(op, "error")
}
