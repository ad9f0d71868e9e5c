package internal

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// PatternCache keeps the most recently used compiled values keyed by their
// source text. Eviction drops the least recently used entry.
type PatternCache[V any] struct {
	entries *lru.Cache[string, V]
}

func NewPatternCache[V any](maxSize int) *PatternCache[V] {
	if maxSize <= 0 {
		maxSize = 1
	}
	// lru.New only fails for a non-positive size
	entries, _ := lru.New[string, V](maxSize)
	return &PatternCache[V]{entries: entries}
}

func (c *PatternCache[V]) Get(key string) (V, bool) {
	return c.entries.Get(key)
}

func (c *PatternCache[V]) Set(key string, value V) {
	c.entries.Add(key, value)
}

func (c *PatternCache[V]) Len() int {
	return c.entries.Len()
}

func (c *PatternCache[V]) Purge() {
	c.entries.Purge()
}
