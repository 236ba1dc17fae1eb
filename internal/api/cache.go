package api

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"
)

// CacheEntry is one stored response.
type CacheEntry struct {
	Value     json.RawMessage
	ExpiresAt time.Time // zero means the entry never expires
}

func (e CacheEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Cache stores successful responses by key. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(key string) (CacheEntry, bool)
	Set(key string, entry CacheEntry) error
	Delete(key string) error
	Clear() error
}

// MemoryCache is an in-process Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]CacheEntry)}
}

func (m *MemoryCache) Get(key string) (CacheEntry, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || entry.expired(time.Now()) {
		return CacheEntry{}, false
	}
	return entry, true
}

func (m *MemoryCache) Set(key string, entry CacheEntry) error {
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Clear() error {
	m.mu.Lock()
	m.entries = make(map[string]CacheEntry)
	m.mu.Unlock()
	return nil
}

// CacheKey derives a stable key from the operation and its parameters. Path
// arguments are sorted by name; query parameters keep caller order, which is
// already deterministic per call site.
func CacheKey(op Operation, req Request) string {
	var b strings.Builder
	b.WriteString(string(op))

	if len(req.Args) > 0 {
		names := make([]string, 0, len(req.Args))
		for name := range req.Args {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteByte('|')
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(req.Args[name])
		}
	}

	for _, p := range req.Query {
		b.WriteByte('|')
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// CachedClient serves repeat GET operations from a cache, falling through to
// the wrapped client on miss. Entries are never invalidated by later writes;
// a stale hit is preferred over a network round trip. Non-GET operations and
// operations requiring authentication bypass the cache entirely.
type CachedClient struct {
	client  Doer
	cache   Cache
	ttl     time.Duration // zero means entries never expire
	metrics *MetricsCollector
}

// CachedOption configures a [CachedClient].
type CachedOption func(*CachedClient)

// WithTTL bounds the lifetime of cached entries. Zero keeps entries forever.
func WithTTL(d time.Duration) CachedOption {
	return func(cc *CachedClient) { cc.ttl = d }
}

// WithCacheMetrics records hits and misses on the collector.
func WithCacheMetrics(m *MetricsCollector) CachedOption {
	return func(cc *CachedClient) { cc.metrics = m }
}

// NewCachedClient wraps a client with a response cache.
func NewCachedClient(client Doer, cache Cache, options ...CachedOption) *CachedClient {
	cc := &CachedClient{client: client, cache: cache}
	for _, option := range options {
		option(cc)
	}
	return cc
}

// Call implements [Doer]. Cacheable operations are answered from the cache
// when a live entry exists, with zero network activity.
func (cc *CachedClient) Call(ctx context.Context, op Operation, req Request) (json.RawMessage, error) {
	ep, err := Resolve(op)
	if err != nil {
		return nil, err
	}
	if ep.Method != "GET" || ep.RequiresAuth {
		return cc.client.Call(ctx, op, req)
	}

	key := CacheKey(op, req)
	if entry, ok := cc.cache.Get(key); ok {
		if cc.metrics != nil {
			cc.metrics.RecordCacheHit(string(op))
		}
		return entry.Value, nil
	}
	if cc.metrics != nil {
		cc.metrics.RecordCacheMiss(string(op))
	}

	data, err := cc.client.Call(ctx, op, req)
	if err != nil {
		return nil, err
	}

	entry := CacheEntry{Value: data}
	if cc.ttl > 0 {
		entry.ExpiresAt = time.Now().Add(cc.ttl)
	}
	// A failed store never fails the call; the next one refetches.
	cc.cache.Set(key, entry)
	return data, nil
}
