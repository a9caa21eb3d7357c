// Package balancecache caches computed group balances in Redis.
//
// Every group carries its own version counter. Writes to a group bump the
// counter, which moves readers to a fresh key; stale entries expire by TTL.
// A nil *Cache or a Cache without a client passes every call through to the loader.
package balancecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rentmates:balances"

// minVersionTTL bounds how long an idle group keeps its version counter.
const minVersionTTL = 30 * 24 * time.Hour

// Cache wraps Redis based caching with per-group versioning.
type Cache struct {
	client     *redis.Client
	ttl        time.Duration
	versionTTL time.Duration
}

// New instantiates the cache helper.
// Version counters outlive cached entries, so a counter that expires and
// restarts never points at an entry written before the last bump.
func New(client *redis.Client, ttl time.Duration) *Cache {
	versionTTL := minVersionTTL
	if 2*ttl > versionTTL {
		versionTTL = 2 * ttl
	}

	return &Cache{client: client, ttl: ttl, versionTTL: versionTTL}
}

// Connect creates a Redis client and checks the connection.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("balancecache: ping: %w", err)
	}

	return client, nil
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

func versionKey(groupID int64) string {
	return keyPrefix + ":" + strconv.FormatInt(groupID, 10) + ":version"
}

// Version returns the current version of the group, initialising it when missing.
func (c *Cache) Version(ctx context.Context, groupID int64) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}

	key := versionKey(groupID)

	ver, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		// SETNX keeps a concurrent Bump from being overwritten.
		if err := c.client.SetNX(ctx, key, 1, c.versionTTL).Err(); err != nil {
			return 0, err
		}

		return c.client.Get(ctx, key).Int64()
	}

	if err != nil {
		return 0, err
	}

	return ver, nil
}

// Key composes the cache key of the group balances with the current version.
func (c *Cache) Key(ctx context.Context, groupID int64) (string, error) {
	id := strconv.FormatInt(groupID, 10)

	if !c.enabled() {
		return keyPrefix + ":" + id, nil
	}

	ver, err := c.Version(ctx, groupID)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s:%s:v%d", keyPrefix, id, ver), nil
}

// FetchJSON loads a cached value into dest or populates it using the loader.
// It reports whether the value was served from the cache.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) (bool, error) {
	if loader == nil {
		return false, errors.New("balancecache: loader required")
	}

	if c.enabled() {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return true, json.Unmarshal(payload, dest)
		}

		if !errors.Is(err, redis.Nil) {
			return false, err
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return false, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}

	if c.enabled() {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return false, err
		}
	}

	return false, json.Unmarshal(raw, dest)
}

// Bump invalidates the cached balances of the group and extends the life of its counter.
func (c *Cache) Bump(ctx context.Context, groupID int64) error {
	if !c.enabled() {
		return nil
	}

	key := versionKey(groupID)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, c.versionTTL)
		return nil
	})

	return err
}

// Drop removes the version counter of a deleted group.
// Entries left under its old versions expire by TTL.
func (c *Cache) Drop(ctx context.Context, groupID int64) error {
	if !c.enabled() {
		return nil
	}

	return c.client.Del(ctx, versionKey(groupID)).Err()
}
