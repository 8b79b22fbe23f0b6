package ratelimit

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmcfuji/studiosite/internal/pkg/cache"
)

// Contact form limits per client IP
const (
	ContactMax        = 5
	ContactExpiration = 10 * time.Minute
)

// NewRedisStorage derives a limiter storage from the shared cache client. Counters live in
// database 2 (cache uses DB 0). Returns nil when Redis is unreachable; the limiter then counts
// in memory. The storage driver panics on a failed connect, so reachability is checked first.
func NewRedisStorage(client *goredis.Client) fiber.Storage {
	if !cache.Available(client) {
		log.Warn("[RateLimit] Redis unavailable, counting in memory")
		return nil
	}

	host := "localhost"
	port := 6379
	opts := client.Options()
	if h, p, err := net.SplitHostPort(opts.Addr); err == nil {
		host = h
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: opts.Password,
		Database: 2,
		Reset:    false,
	})
}

// Contact limits contact submissions. storage may be nil.
func Contact(storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        ContactMax,
		Expiration: ContactExpiration,
		Storage:    storage,
		LimitReached: func(c *fiber.Ctx) error {
			log.Warnf("[RateLimit] contact limit reached for %s", c.IP())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests",
			})
		},
	})
}
