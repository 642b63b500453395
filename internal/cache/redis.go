package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/strikesquad/squadapi/internal/logger"
)

// Redis is a Store backed by a shared Redis instance, for deployments running
// more than one squadapi replica against the same upstream quota. Expiry is
// delegated to Redis key TTLs; Clear removes only keys under this store's
// prefix so the two provider caches stay independent.
type Redis struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedis creates a Redis-backed store. prefix namespaces the keys, e.g.
// "squadapi:footballdata".
func NewRedis(rdb *redis.Client, prefix string, ttl time.Duration, log *logger.Logger) *Redis {
	return &Redis{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

// Get returns the stored value if Redis still holds it. Transport errors are
// treated as a miss; the caller just refetches.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.rdb.Get(ctx, r.prefix+":"+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		r.log.Warn("Redis cache get failed for key %s: %v", key, err)
		return nil, false
	}
	return value, true
}

// Set stores value under key with the store TTL. Failures are logged and
// swallowed: a missed cache write only costs an extra upstream fetch later.
func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.rdb.Set(ctx, r.prefix+":"+key, value, r.ttl).Err(); err != nil {
		r.log.Warn("Redis cache set failed for key %s: %v", key, err)
	}
}

// Clear removes every key under the store prefix.
func (r *Redis) Clear(ctx context.Context) {
	iter := r.rdb.Scan(ctx, 0, r.prefix+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.log.Warn("Redis cache scan failed: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("Redis cache clear failed: %v", err)
	}
}
