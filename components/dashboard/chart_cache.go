package dashboard

import (
	"encoding/json"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RenderCache memoizes rendered chart markup.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// CacheStats counts lookups since the cache was built.
type CacheStats struct {
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
	Entries int `json:"entries"`
}

// ChartCache keeps chart markup for a fixed TTL. Concurrent misses on one key
// share a single render. A non-positive TTL makes it a pass-through.
type ChartCache struct {
	ttl    time.Duration
	now    func() time.Time
	flight singleflight.Group

	mu     sync.Mutex
	markup map[string]chartEntry
	hits   int
	misses int
}

type chartEntry struct {
	html    string
	expires time.Time
}

// NewChartCache builds a cache with the provided TTL.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:    ttl,
		now:    time.Now,
		markup: make(map[string]chartEntry),
	}
}

// GetOrRender serves live markup or renders it. Failed renders are not stored.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}
	if html, ok := c.lookup(key); ok {
		return html, nil
	}
	v, err, _ := c.flight.Do(key, func() (any, error) {
		// a flight that finished between lookup and Do already stored it
		c.mu.Lock()
		entry, ok := c.markup[key]
		c.mu.Unlock()
		if ok && !c.now().After(entry.expires) {
			return entry.html, nil
		}
		html, err := render()
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.markup[key] = chartEntry{html: html, expires: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return html, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *ChartCache) lookup(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.markup[key]
	if ok && c.now().After(entry.expires) {
		delete(c.markup, key)
		ok = false
	}
	if !ok {
		c.misses++
		return "", false
	}
	c.hits++
	return entry.html, true
}

// Purge drops expired entries and returns how many were removed.
func (c *ChartCache) Purge() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for key, entry := range c.markup {
		if now.After(entry.expires) {
			delete(c.markup, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired ones included.
func (c *ChartCache) Len() int {
	return c.Stats().Entries
}

// Stats reports hit and miss counters.
func (c *ChartCache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Entries: len(c.markup)}
}

// specKey fingerprints any JSON-encodable chart input.
func specKey(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "invalid"
	}
	h := fnv.New64a()
	h.Write(b) //nolint:errcheck
	return strconv.FormatUint(h.Sum64(), 16)
}
