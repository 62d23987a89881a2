package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"hostel_portal/internal/adapters/observability"
)

// Prefix namespaces every key the portal writes.
const Prefix = "hostel:"

// Cache stores JSON snapshots of computed views (stat cards, dashboards).
type Cache struct {
	c *redis.Client
}

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func key(k string) string { return Prefix + k }

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Close() error { return r.c.Close() }

// Get decodes the value at k into dst. A missing key is (false, nil).
func (r *Cache) Get(ctx context.Context, k string, dst any) (bool, error) {
	raw, err := r.c.Get(ctx, key(k)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		observability.ObserveCache("redis", "miss")
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// an undecodable snapshot is treated as absent and dropped
		_ = r.c.Del(ctx, key(k)).Err()
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	observability.ObserveCache("redis", "hit")
	return true, nil
}

// Set stores v under k; ttlSec <= 0 keeps it until invalidated.
func (r *Cache) Set(ctx context.Context, k string, v any, ttlSec int) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ttl := time.Duration(max(ttlSec, 0)) * time.Second
	if err := r.c.Set(ctx, key(k), raw, ttl).Err(); err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return nil
}

// Del drops all keys in a single round trip.
func (r *Cache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = key(k)
	}
	if err := r.c.Del(ctx, full...).Err(); err != nil {
		return err
	}
	observability.ObserveCache("redis", "del")
	return nil
}
