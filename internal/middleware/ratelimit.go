package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CheckRateLimit counts a hit on resource for id in a fixed window.
// Returns true if allowed, false if limit exceeded. The counter and its expiry
// are written in one transaction; EXPIRE NX also restores a missing TTL.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil || limit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	var incr *redis.IntCmd
	if _, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	}); err != nil {
		return true, err
	}
	return incr.Val() <= int64(limit), nil
}

// RateLimit returns a middleware enforcing limit requests per window, keyed by
// the authenticated user or else the remote IP. Redis failures fail open.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := "ip:" + c.RealIP()
			if uid := CurrentUserID(c); uid != "" {
				id = "user:" + uid
			}

			allowed, err := CheckRateLimit(c.Request().Context(), rdb, c.Path(), id, limit, window)
			if err != nil {
				log.WithError(err).Warn("rate limiter unavailable")
				return next(c)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
