// Package cache keeps parsed analysis results in memory for a limited time,
// keyed by a hash of the analysed source.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/davetashner/bigo/internal/model"
)

// DefaultTTL is how long an entry stays valid.
const DefaultTTL = 60 * time.Minute

// keyLen is the number of hex characters of the SHA-256 digest used as key.
const keyLen = 16

// Cache is a TTL cache of analysis results. Expired entries are removed
// lazily by Get; there is no background sweeper.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	result  *model.Result
	created time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache whose entries expire after ttl. A non-positive ttl
// selects DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Key returns the first 16 hex characters of the SHA-256 of code.
func Key(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])[:keyLen]
}

// Get returns the cached result for code if it is younger than the TTL.
func (c *Cache) Get(code string) (*model.Result, bool) {
	key := Key(code)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.created) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.result, true
}

// Set stores result for code, replacing any previous entry.
func (c *Cache) Set(code string, result *model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[Key(code)] = entry{result: result, created: c.now()}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// TTL returns the configured time to live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
