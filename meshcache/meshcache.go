// Package meshcache keeps recently built values for a short time.
//
// Entries expire when they have not been used for longer than the TTL.
// Expiry is checked synchronously: Get treats an expired entry as absent
// and Put first sweeps every expired entry. Entries are kept in
// least-recently-used order, which is also last-use order, so the sweep
// stops at the first live entry.
package meshcache

import (
	"time"

	"github.com/hashicorp/golang-lru/simplelru"
)

// Defaults.
const (
	DefaultTTL        = time.Second
	DefaultMaxEntries = 4096
)

type config struct {
	ttl        time.Duration
	now        func() time.Time
	maxEntries int
	evict      func(key, value any)
}

func defaultConfig() config {
	return config{
		ttl:        DefaultTTL,
		now:        time.Now,
		maxEntries: DefaultMaxEntries,
	}
}

// Option configures a Cache.
type Option func(*config)

// WithTTL sets how long an unused entry survives. Non-positive values are
// ignored.
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock sets the time source. A nil clock is ignored.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMaxEntries bounds the number of entries regardless of age. The least
// recently used entry is dropped when the bound is exceeded, even if it is
// still within the TTL, so a later Get for its key misses and the value is
// rebuilt. Choose a bound above the number of keys used per TTL window.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithEvict registers fn to be called for every entry leaving the cache:
// on expiry, overwrite, size bound, Remove and Purge.
func WithEvict[K comparable, V any](fn func(K, V)) Option {
	return func(c *config) {
		if fn == nil {
			c.evict = nil
			return
		}
		c.evict = func(key, value any) {
			fn(key.(K), value.(V))
		}
	}
}

type entry struct {
	value    any
	lastUsed time.Time
}

// Cache is a time-to-live cache keyed by K.
//
// Cache is not safe for concurrent use.
type Cache[K comparable, V any] struct {
	lru *simplelru.LRU
	cfg config
}

// New creates an empty cache.
func New[K comparable, V any](opts ...Option) *Cache[K, V] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cache[K, V]{cfg: cfg}
	var onEvict simplelru.EvictCallback
	if cfg.evict != nil {
		onEvict = func(key, value interface{}) {
			cfg.evict(key, value.(*entry).value)
		}
	}
	// NewLRU only fails for non-positive sizes, which config excludes.
	c.lru, _ = simplelru.NewLRU(cfg.maxEntries, onEvict)
	return c
}

// TTL returns the configured time-to-live.
func (c *Cache[K, V]) TTL() time.Duration {
	return c.cfg.ttl
}

func (c *Cache[K, V]) expired(e *entry, now time.Time) bool {
	return now.Sub(e.lastUsed) > c.cfg.ttl
}

// Get returns the value for key and refreshes its last-use time. An entry
// unused for longer than the TTL is dropped and reported as absent.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	now := c.cfg.now()

	v, ok := c.lru.Peek(key)
	if !ok {
		return zero, false
	}
	e := v.(*entry)
	if c.expired(e, now) {
		c.lru.Remove(key)
		return zero, false
	}

	c.lru.Get(key)
	e.lastUsed = now
	return e.value.(V), true
}

// Put sweeps expired entries, then stores value under key with the
// current time. An existing entry for key is replaced.
func (c *Cache[K, V]) Put(key K, value V) {
	now := c.cfg.now()
	c.sweep(now)

	if c.lru.Contains(key) {
		c.lru.Remove(key)
	}
	c.lru.Add(key, &entry{value: value, lastUsed: now})
}

// Sweep drops every expired entry and returns how many were dropped.
func (c *Cache[K, V]) Sweep() int {
	return c.sweep(c.cfg.now())
}

func (c *Cache[K, V]) sweep(now time.Time) int {
	n := 0
	for {
		_, v, ok := c.lru.GetOldest()
		if !ok || !c.expired(v.(*entry), now) {
			return n
		}
		c.lru.RemoveOldest()
		n++
	}
}

// Remove drops key. It reports whether the key was present.
func (c *Cache[K, V]) Remove(key K) bool {
	return c.lru.Remove(key)
}

// Len returns the number of entries, including expired entries not yet
// swept.
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.lru.Purge()
}
