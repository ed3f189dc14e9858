package llm

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// responseCache is a bounded, TTL-aware cache of answers keyed by operation
// and prompt. A nil cache is valid and never hits.
type responseCache struct {
	entries *expirable.LRU[string, SearchResult]
}

// newResponseCache creates a cache holding up to size entries for ttl each.
// A size of 0 disables caching.
func newResponseCache(size int, ttl time.Duration) (*responseCache, error) {
	if size <= 0 {
		return nil, nil
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &responseCache{entries: expirable.NewLRU[string, SearchResult](size, nil, ttl)}, nil
}

func cacheKey(op, prompt string) string {
	return op + "\x00" + prompt
}

// get retrieves an answer if it exists and hasn't expired.
func (c *responseCache) get(key string) (SearchResult, bool) {
	if c == nil {
		return SearchResult{}, false
	}
	return c.entries.Get(key)
}

// set stores an answer.
func (c *responseCache) set(key string, result SearchResult) {
	if c == nil {
		return
	}
	c.entries.Add(key, result)
}

// size returns the number of entries in the cache.
func (c *responseCache) size() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// clear removes all entries from the cache.
func (c *responseCache) clear() {
	if c == nil {
		return
	}
	c.entries.Purge()
}
