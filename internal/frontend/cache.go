package frontend

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"github.com/xs-lang/xs/internal/source"
)

// DefaultCacheSize is the number of sessions a Cache keeps when no size is
// given.
const DefaultCacheSize = 256

// Cache keeps recently parsed sessions keyed by Digest, so unchanged files
// are not parsed again. Failed parses are not cached.
type Cache struct {
	sessions *lru.ARCCache
	opts     Options

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache returns a cache holding up to size sessions.
func NewCache(size int, opts Options) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	sessions, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &Cache{sessions: sessions, opts: opts}, nil
}

// Parse returns the cached session for file, parsing it on a miss. The
// boolean reports a hit.
func (c *Cache) Parse(file *source.File) (*Session, bool, error) {
	key := DigestOf(file, c.opts)
	if v, ok := c.sessions.Get(key); ok {
		c.hits.Add(1)
		return v.(*Session), true, nil
	}
	c.misses.Add(1)

	s, err := ParseSource(file, c.opts)
	if err != nil {
		return s, false, err
	}
	c.sessions.Add(key, s)
	return s, false, nil
}

// Len returns the number of cached sessions.
func (c *Cache) Len() int {
	return c.sessions.Len()
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
