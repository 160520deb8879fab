package words

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedLookup memoizes answers from another Lookup. Only successful
// answers (found or not found) are cached; errors always go back to the
// source on the next call.
type CachedLookup struct {
	next  Lookup
	cache *lru.Cache[string, Definition]
}

// NewCachedLookup wraps next with an LRU of the given size.
func NewCachedLookup(next Lookup, size int) (*CachedLookup, error) {
	c, err := lru.New[string, Definition](size)
	if err != nil {
		return nil, err
	}
	return &CachedLookup{next: next, cache: c}, nil
}

// LookupDefinition serves from the cache when possible.
func (c *CachedLookup) LookupDefinition(ctx context.Context, word string) (Definition, error) {
	key := strings.ToLower(strings.TrimSpace(word))
	if def, ok := c.cache.Get(key); ok {
		return def, nil
	}
	def, err := c.next.LookupDefinition(ctx, word)
	if err != nil {
		return Definition{}, err
	}
	c.cache.Add(key, def)
	return def, nil
}

// Len reports how many words are cached.
func (c *CachedLookup) Len() int { return c.cache.Len() }
