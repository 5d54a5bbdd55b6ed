package utils

import (
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// PageCache is a small LRU+TTL cache for rendered page data fetched from the
// blog API. Besides plain Get/Set it offers Do, which collapses concurrent
// fetches of the same key into a single upstream call: while one request is
// filling a key, later requests for that key wait for its result instead of
// issuing their own fetch.
type PageCache struct {
	lru *lru.Cache[string, cacheEntry]

	mu       sync.Mutex
	inFlight map[string]chan struct{}
}

var (
	pageCache     *PageCache
	pageCacheOnce sync.Once
)

// GetCache returns the process-wide cache instance.
func GetCache() *PageCache {
	pageCacheOnce.Do(func() {
		l, err := lru.New[string, cacheEntry](500)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		pageCache = &PageCache{
			lru:      l,
			inFlight: make(map[string]chan struct{}),
		}
	})
	return pageCache
}

// NewPageCache builds an independent cache, used by tests.
func NewPageCache(size int) (*PageCache, error) {
	l, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &PageCache{lru: l, inFlight: make(map[string]chan struct{})}, nil
}

func (c *PageCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lru.Add(key, cacheEntry{data: data, expiresAt: time.Now().Add(ttl)})
}

// Get returns the cached value or nil when absent/expired.
func (c *PageCache) Get(key string) interface{} {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		c.lru.Remove(key)
		return nil
	}
	return entry.data
}

func (c *PageCache) Delete(key string) {
	c.lru.Remove(key)
}

// Do returns the cached value for key, or runs fetch to fill it. Concurrent
// callers on a cold key block until the first caller's fetch resolves; fetch
// errors are not cached, so the next caller retries.
func (c *PageCache) Do(key string, ttl time.Duration, fetch func() (interface{}, error)) (interface{}, error) {
	for {
		if data := c.Get(key); data != nil {
			return data, nil
		}

		c.mu.Lock()
		if done, busy := c.inFlight[key]; busy {
			c.mu.Unlock()
			<-done
			// The filler either cached a value or failed; loop to re-check.
			if data := c.Get(key); data != nil {
				return data, nil
			}
			continue
		}
		done := make(chan struct{})
		c.inFlight[key] = done
		c.mu.Unlock()

		data, err := fetch()
		if err == nil {
			c.Set(key, data, ttl)
		}

		c.mu.Lock()
		delete(c.inFlight, key)
		close(done)
		c.mu.Unlock()

		return data, err
	}
}
