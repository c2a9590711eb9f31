package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/metrics"
)

// RateLimiter is a fixed-window limiter keyed by client IP, shared by every
// API instance through Redis.
type RateLimiter struct {
	rdb     *redis.Client
	limit   int
	window  time.Duration
	prefix  string
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRateLimiter(
	rdb *redis.Client,
	limit int,
	window time.Duration,
	prefix string,
	logger *logging.Logger,
	m *metrics.BookingMetrics,
) *RateLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RateLimiter{
		rdb:     rdb,
		limit:   limit,
		window:  window,
		prefix:  prefix,
		logger:  logger,
		metrics: m,
	}
}

// Middleware lets requests through when Redis is missing or failing.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.rdb == nil {
			c.Next()
			return
		}

		key := rl.prefix + ":" + c.ClientIP()
		count, err := rl.incr(c.Request.Context(), key)
		if err != nil {
			rl.logger.Warn("redis rate limiter error", "error", err)
			c.Next()
			return
		}

		if count > int64(rl.limit) {
			rl.metrics.ObserveRateLimited()
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			httperr.Abort(c, http.StatusTooManyRequests, "rate_limited", "Muitas tentativas. Aguarde e tente novamente.")
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	ms := rl.window.Milliseconds()
	if ms <= 0 {
		ms = int64(time.Minute / time.Millisecond)
	}
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, ms).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}
