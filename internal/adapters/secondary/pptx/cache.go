package pptx

import (
	"sync"
	"time"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// PartCache keeps theme-derived part bodies (theme, master styles, layouts)
// so that assembling many decks with one template renders them once.
// Entries are keyed by template id and part name.
type PartCache struct {
	mu        sync.RWMutex
	parts     map[string]*cachedPart
	maxSize   int
	ttl       time.Duration
	hits      int64
	misses    int64
	evictions int64
}

type cachedPart struct {
	body      []byte
	expiresAt time.Time
	lastHit   time.Time
}

// NewPartCache creates a cache holding at most maxSize bodies; a ttl of 0 never expires
func NewPartCache(maxSize int, ttl time.Duration) *PartCache {
	return &PartCache{
		parts:   make(map[string]*cachedPart),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func cacheKey(theme entities.ThemeID, part string) string {
	return theme.String() + "/" + part
}

// GetOrRender returns the cached body or renders and stores it
func (c *PartCache) GetOrRender(theme entities.ThemeID, part string, render func() []byte) []byte {
	if body, ok := c.Get(theme, part); ok {
		return body
	}
	body := render()
	c.Set(theme, part, body)
	return body
}

// Get retrieves a cached part body
func (c *PartCache) Get(theme entities.ThemeID, part string) ([]byte, bool) {
	key := cacheKey(theme, part)

	c.mu.Lock()
	defer c.mu.Unlock()

	cached, exists := c.parts[key]
	if !exists {
		c.misses++
		return nil, false
	}

	if c.ttl > 0 && time.Now().After(cached.expiresAt) {
		delete(c.parts, key)
		c.misses++
		return nil, false
	}

	c.hits++
	cached.lastHit = time.Now()
	return cached.body, true
}

// Set stores a part body
func (c *PartCache) Set(theme entities.ThemeID, part string, body []byte) {
	key := cacheKey(theme, part)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.parts[key]; !exists && c.maxSize > 0 && len(c.parts) >= c.maxSize {
		c.evictLRU()
	}

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = time.Now().Add(c.ttl)
	}

	c.parts[key] = &cachedPart{
		body:      body,
		expiresAt: expiresAt,
		lastHit:   time.Now(),
	}
}

// Clear drops every cached body
func (c *PartCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parts = make(map[string]*cachedPart)
}

// evictLRU evicts the least recently used entry; callers hold the lock
func (c *PartCache) evictLRU() {
	var (
		evictKey  string
		oldestHit time.Time
	)

	for key, cached := range c.parts {
		if evictKey == "" || cached.lastHit.Before(oldestHit) {
			oldestHit = cached.lastHit
			evictKey = key
		}
	}

	if evictKey != "" {
		delete(c.parts, evictKey)
		c.evictions++
	}
}

// Stats returns cache statistics
func (c *PartCache) Stats() entities.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := entities.CacheStats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.parts),
		MaxSize:   c.maxSize,
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}
	return stats
}
