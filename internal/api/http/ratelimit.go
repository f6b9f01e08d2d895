package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campushelp/helpdesk/pkg/errorutil"
)

// SubmitRateLimiter throttles public ticket submissions per client IP using
// a fixed one-minute window in Redis. When Redis is unreachable the limiter
// lets the request through; intake availability wins over throttling.
func SubmitRateLimiter(client *redis.Client, perMinute int, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || perMinute <= 0 {
			return c.Next()
		}

		key := fmt.Sprintf("helpdesk:submitrate:%s:%d", c.IP(), time.Now().Unix()/60)
		ctx := c.UserContext()

		pipe := client.Pipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 2*time.Minute)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Warn("submit rate limiter unavailable", zap.Error(err))
			return c.Next()
		}

		if incr.Val() > int64(perMinute) {
			return errorutil.NewDomainError("RATE_LIMITED", "too many submissions, try again shortly",
				fiber.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}
