package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisCache stores JSON-encoded values in Redis under a key prefix so
// several service instances see the same view states.
type RedisCache[V any] struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
	logger  log.FieldLogger
}

// NewRedisCache creates a RedisCache. Operations that fail are logged and
// behave like a miss, matching the in-memory cache's error-free API.
func NewRedisCache[V any](client *redis.Client, prefix string, logger log.FieldLogger) *RedisCache[V] {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &RedisCache[V]{client: client, prefix: prefix, timeout: 2 * time.Second, logger: logger}
}

func (c *RedisCache[V]) key(k string) string {
	return c.prefix + k
}

func (c *RedisCache[V]) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

// Get implements Cache.Get.
func (c *RedisCache[V]) Get(key string) (V, bool) {
	var zero V
	ctx, cancel := c.ctx()
	defer cancel()

	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).WithField("key", key).Warn("redis cache get failed")
		}
		return zero, false
	}
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("redis cache decode failed")
		return zero, false
	}
	return v, true
}

// Set implements Cache.Set.
func (c *RedisCache[V]) Set(key string, value V, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("redis cache encode failed")
		return
	}
	if ttl < 0 {
		ttl = 0
	}
	ctx, cancel := c.ctx()
	defer cancel()
	if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("redis cache set failed")
	}
}

// Delete implements Cache.Delete.
func (c *RedisCache[V]) Delete(key string) {
	ctx, cancel := c.ctx()
	defer cancel()
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("redis cache delete failed")
	}
}

var _ Cache[any] = (*RedisCache[any])(nil)
