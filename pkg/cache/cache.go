// Package cache stores JSON-encoded values under string keys with a TTL.
//
// Two drivers implement Cache:
//
//	redis   → shared across instances (CACHE_DRIVER=redis)
//	memory  → process-local (default)
//
// A miss, an expired entry and a backend error all read as a miss; callers
// fall through to the store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/akil18/cop-shop-server-side/pkg/metrics"
)

// Cache is implemented by every driver.
type Cache interface {
	// Get unmarshals the value at key into dest and reports a hit.
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Options selects and configures a driver.
type Options struct {
	Driver        string // "redis" | "memory"
	RedisAddr     string
	RedisPassword string
}

// New builds the cache for opts.Driver. The redis driver is pinged first.
func New(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		rdb, err := Connect(ctx, opts.RedisAddr, opts.RedisPassword)
		if err != nil {
			return nil, err
		}
		return NewRedis(rdb), nil
	default:
		return nil, fmt.Errorf("cache: unsupported driver %q (supported: redis, memory)", opts.Driver)
	}
}

func record(driver string, hit bool) {
	if hit {
		metrics.CacheHits.WithLabelValues(driver).Inc()
		return
	}
	metrics.CacheMisses.WithLabelValues(driver).Inc()
}

// ─── Memory driver ───────────────────────────────────────────────────────────

type entry struct {
	data      []byte
	expiresAt time.Time // zero = no expiry
}

// Memory is a process-local Cache. Values are stored JSON-encoded so a hit
// decodes exactly as it would from redis.
type Memory struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]entry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string, dest any) bool {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	if ok && !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		ok = false
	}
	hit := ok && json.Unmarshal(e.data, dest) == nil
	record("memory", hit)
	return hit
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %q: %w", key, err)
	}
	e := entry{data: data}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}
