package imageproxy

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

// maxCachedBytes keeps large originals out of Redis
const maxCachedBytes = 2 << 20

// RedisResultCache stores proxied images as Redis hashes
type RedisResultCache struct {
	client *redis.Client
	prefix string
}

func NewRedisResultCache(client *redis.Client) *RedisResultCache {
	return &RedisResultCache{client: client, prefix: "imageproxy:"}
}

func (c *RedisResultCache) Get(ctx context.Context, key string) (*Result, bool) {
	vals, err := c.client.HGetAll(ctx, c.prefix+key).Result()
	if err != nil {
		log.Debugf("[ImageProxy] cache read failed for %s: %v", key, err)
		return nil, false
	}
	body, ok := vals["body"]
	if !ok {
		return nil, false
	}
	return &Result{
		Body:        []byte(body),
		ContentType: vals["content_type"],
		ETag:        vals["etag"],
	}, true
}

func (c *RedisResultCache) Set(ctx context.Context, key string, res *Result, ttl time.Duration) {
	if len(res.Body) > maxCachedBytes {
		return
	}
	k := c.prefix + key
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, k, "body", res.Body, "content_type", res.ContentType, "etag", res.ETag)
	pipe.Expire(ctx, k, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Debugf("[ImageProxy] cache write failed for %s: %v", key, err)
	}
}
