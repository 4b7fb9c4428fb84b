package ai

import (
	"sync"
	"time"

	"github.com/namastra/namastra-go/internal/domain"
)

type ParseCacheEntry struct {
	Wish      *domain.ParsedWish
	Metadata  *GenerateMetadata
	Timestamp time.Time
}

// ParseCache is an in-process TTL cache for parsed wishes, keyed by the
// normalized wish text.
type ParseCache struct {
	mu      sync.RWMutex
	entries map[string]*ParseCacheEntry
	ttl     time.Duration
}

func NewParseCache(ttl time.Duration) *ParseCache {
	return &ParseCache{
		entries: make(map[string]*ParseCacheEntry),
		ttl:     ttl,
	}
}

func (c *ParseCache) Get(key string) (*ParseCacheEntry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Since(entry.Timestamp) >= c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	return entry, true
}

func (c *ParseCache) Set(key string, wish *domain.ParsedWish, metadata *GenerateMetadata) {
	c.mu.Lock()
	c.entries[key] = &ParseCacheEntry{
		Wish:      wish,
		Metadata:  metadata,
		Timestamp: time.Now(),
	}
	c.mu.Unlock()
}
