package style

import (
	"sync"
	"time"
)

type cacheEntry struct {
	data    []byte
	created time.Time
}

// Cache keeps fetched stylesheets for a fixed time.
type Cache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]cacheEntry
}

// NewCache returns a cache whose entries expire after ttl. A non-positive
// ttl keeps entries forever.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:  ttl,
		now:  now,
		data: make(map[string]cacheEntry),
	}
}

// Put stores a copy of data under key.
func (c *Cache) Put(key string, data []byte) {
	entry := cacheEntry{
		data:    append([]byte(nil), data...),
		created: c.now(),
	}
	c.mu.Lock()
	c.data[key] = entry
	c.mu.Unlock()
}

// Get returns the entry for key, dropping it if it has expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.created) > c.ttl {
		c.mu.Lock()
		if cur, ok := c.data[key]; ok && cur.created.Equal(entry.created) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return append([]byte(nil), entry.data...), true
}

// Len reports how many entries are stored, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
