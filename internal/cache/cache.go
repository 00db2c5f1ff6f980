// Package cache holds GET responses from the blog backend for a short TTL.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Response is a cached backend response body.
type Response struct {
	StatusCode int
	Body       []byte
}

// entry wraps a cached response with expiry and insertion order tracking.
type entry struct {
	resp      *Response
	path      string
	expiry    time.Time
	insertIdx int64
}

// ResponseCache caches GET responses keyed by "userID:method:path".
// Safe for concurrent use.
type ResponseCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
	now        func() time.Time
}

// New creates a ResponseCache with the given TTL and max entry count.
func New(ttl time.Duration, maxEntries int) *ResponseCache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &ResponseCache{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// MakeKey builds a cache key from a credential scope, HTTP method, and path.
// The scope must not contain ':'.
func MakeKey(scope, method, path string) string {
	return scope + ":" + method + ":" + path
}

// pathOf returns the path part of a key built by MakeKey.
func pathOf(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return key
	}
	return parts[2]
}

// Get returns a cached response if found and not expired.
func (c *ResponseCache) Get(key string) (*Response, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().After(e.expiry) {
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && c.now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.resp, true
}

// Set stores a response. Evicts the oldest entry if at capacity.
func (c *ResponseCache) Set(key string, resp *Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		resp:      resp,
		path:      pathOf(key),
		expiry:    c.now().Add(c.ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}

	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[key] = e
}

// InvalidateResource removes every entry whose path is under resource,
// e.g. "/api/posts" drops "/api/posts", "/api/posts/1" and "/api/posts?category=go".
func (c *ResponseCache) InvalidateResource(resource string) {
	resource = strings.TrimSuffix(resource, "/")

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.items {
		if e.path == resource || strings.HasPrefix(e.path, resource+"/") || strings.HasPrefix(e.path, resource+"?") {
			delete(c.items, key)
		}
	}
}

// Clear removes every entry.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry)
}

// Len returns the number of entries, expired ones included.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (c *ResponseCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
