package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/dmcfuji/studiosite/internal/pkg/env"
)

var client *redis.Client

// Config describes the Redis-compatible cache server
type Config struct {
	Host     string
	Port     int
	Password string
}

// LoadConfig reads the cache settings from the environment
func LoadConfig() Config {
	port, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379"))
	if err != nil {
		port = 6379
	}
	return Config{
		Host:     env.GetEnv("CACHE_HOST", "localhost"),
		Port:     port,
		Password: env.GetEnv("CACHE_PASSWORD", ""),
	}
}

// Addr returns host:port
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SetupCache initializes the shared Redis client. A failed ping is only logged: callers treat
// cache errors as misses.
func SetupCache(cfg Config) *redis.Client {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if pong, err := client.Ping(ctx).Result(); err != nil {
		log.Warnf("[Cache] Could not connect to %s: %v", cfg.Addr(), err)
	} else {
		log.Infof("[Cache] Connected to %s: %s", cfg.Addr(), pong)
	}
	return client
}

// Available pings client with a short timeout. A nil client is never available.
func Available(client *redis.Client) bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	if client == nil {
		SetupCache(LoadConfig())
	}
	return client
}

// IsMiss reports whether err means the key does not exist
func IsMiss(err error) bool {
	return err == redis.Nil
}
