package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/davetashner/bigo/internal/cache"
	"github.com/davetashner/bigo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestKey(t *testing.T) {
	// sha256("") = e3b0c44298fc1c149afbf4c8996fb924...
	assert.Equal(t, "e3b0c44298fc1c14", cache.Key(""))
	assert.Len(t, cache.Key("for i in range(n): pass"), 16)
	assert.Equal(t, cache.Key("x"), cache.Key("x"))
	assert.NotEqual(t, cache.Key("x"), cache.Key("x "))
}

func TestCache_SetGet(t *testing.T) {
	c := cache.New(time.Minute)
	_, ok := c.Get("code")
	assert.False(t, ok)

	r := &model.Result{Language: "Go"}
	c.Set("code", r)

	got, ok := c.Get("code")
	require.True(t, ok)
	assert.Same(t, r, got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_TTLExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := cache.New(60*time.Minute, cache.WithClock(clock.Now))

	c.Set("code", &model.Result{Language: "Go"})

	clock.Advance(59 * time.Minute)
	_, ok := c.Get("code")
	assert.True(t, ok, "entry younger than TTL is served")

	clock.Advance(time.Minute)
	_, ok = c.Get("code")
	assert.False(t, ok, "entry at TTL is expired")
	assert.Zero(t, c.Len(), "expired entry is evicted on lookup")
}

func TestCache_SetRefreshesTimestamp(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := cache.New(10*time.Minute, cache.WithClock(clock.Now))

	c.Set("code", &model.Result{Language: "A"})
	clock.Advance(8 * time.Minute)
	c.Set("code", &model.Result{Language: "B"})
	clock.Advance(8 * time.Minute)

	got, ok := c.Get("code")
	require.True(t, ok)
	assert.Equal(t, "B", got.Language)
}

func TestCache_Clear(t *testing.T) {
	c := cache.New(0)
	assert.Equal(t, cache.DefaultTTL, c.TTL())

	c.Set("a", &model.Result{})
	c.Set("b", &model.Result{})
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := cache.New(time.Minute)
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code := string(rune('a' + i%5))
			c.Set(code, &model.Result{})
			_, _ = c.Get(code)
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, c.Len())
}
