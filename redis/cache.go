package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/etnz/fundamental"
	"github.com/etnz/fundamental/date"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// DefaultTTL is the lifetime of a cache entry when none is configured.
const DefaultTTL = 24 * time.Hour

// absentEntry is the cached form of fundamental.Absent.
const absentEntry = "-"

// kv is the subset of the go-redis API used by the cache.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cache is a fundamental.Store that answers from Redis when it can and from
// the backing store otherwise.
//
// Both present and absent results are cached. Errors of the backing store are
// never cached. A Redis failure is logged and the backing store is queried
// instead, so the cache can only make a lookup slower, never fail it.
type Cache struct {
	rdb    kv
	next   fundamental.Store
	ttl    time.Duration
	prefix string
}

// NewCache returns a cache in front of next. A zero ttl means DefaultTTL.
func NewCache(rdb *redis.Client, next fundamental.Store, ttl time.Duration) *Cache {
	return newCache(rdb, next, ttl)
}

func newCache(rdb kv, next fundamental.Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, next: next, ttl: ttl, prefix: "fundamental"}
}

func (c *Cache) key(on date.Date, id fundamental.ID, path string) string {
	return strings.Join([]string{c.prefix, id.String(), on.String(), path}, ":")
}

// Get implements fundamental.Store.
func (c *Cache) Get(ctx context.Context, on date.Date, id fundamental.ID, path string) (fundamental.Value, error) {
	if err := fundamental.ValidatePath(path); err != nil {
		return fundamental.Absent(), err
	}
	key := c.key(on, id, path)

	entry, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		v, err := decodeEntry(entry)
		if err == nil {
			return v, nil
		}
		slog.Warn("cache-corrupted", "key", key, "error", err)
	case errors.Is(err, redis.Nil):
		// miss
	default:
		slog.Warn("cache-unavailable", "key", key, "error", err)
	}

	v, err := c.next.Get(ctx, on, id, path)
	if err != nil {
		return fundamental.Absent(), err
	}
	if err := c.rdb.Set(ctx, key, encodeEntry(v), c.ttl).Err(); err != nil {
		slog.Warn("cache-unavailable", "key", key, "error", err)
	}
	return v, nil
}

// encodeEntry returns the cached form of v.
func encodeEntry(v fundamental.Value) string {
	d, ok := v.Decimal()
	if !ok {
		return absentEntry
	}
	return d.String()
}

// decodeEntry parses a cached entry.
func decodeEntry(entry string) (fundamental.Value, error) {
	if entry == absentEntry {
		return fundamental.Absent(), nil
	}
	d, err := decimal.NewFromString(entry)
	if err != nil {
		return fundamental.Absent(), fmt.Errorf("redis: invalid entry %q: %w", entry, err)
	}
	return fundamental.V(d), nil
}

// Compile-time interface check.
var _ fundamental.Store = (*Cache)(nil)
